package source

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
)

const documentExt = ".json"

// ParsePath derives positional metadata from a document path laid out as
// <root>/<congress>/<chamber>/<session>/<year>_<rollcall>.json. Relative
// arguments are resolved against the working directory first.
func ParsePath(root, path string) (models.Position, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: root %s: %v", sentinel.ErrInvalidPath, root, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s: %v", sentinel.ErrInvalidPath, path, err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s is not under %s", sentinel.ErrInvalidPath, path, root)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 4 {
		return models.Position{}, fmt.Errorf("%w: %s: expected 4 segments below root, got %d", sentinel.ErrInvalidPath, path, len(parts))
	}

	congress, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s: congress %q", sentinel.ErrInvalidPath, path, parts[0])
	}

	chamber, ok := models.ParseChamber(parts[1])
	if !ok {
		return models.Position{}, fmt.Errorf("%w: %s: %q", sentinel.ErrUnknownChamber, path, parts[1])
	}

	session, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s: session %q", sentinel.ErrInvalidPath, path, parts[2])
	}

	name := parts[3]
	if !strings.EqualFold(filepath.Ext(name), documentExt) {
		return models.Position{}, fmt.Errorf("%w: %s: not a %s file", sentinel.ErrInvalidPath, path, documentExt)
	}
	yearPart, rollPart, found := strings.Cut(strings.TrimSuffix(name, filepath.Ext(name)), "_")
	if !found {
		return models.Position{}, fmt.Errorf("%w: %s: file name must be <year>_<rollcall>%s", sentinel.ErrInvalidPath, path, documentExt)
	}
	year, err := strconv.ParseUint(yearPart, 10, 16)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s: year %q", sentinel.ErrInvalidPath, path, yearPart)
	}
	rollcall, err := strconv.ParseUint(rollPart, 10, 32)
	if err != nil {
		return models.Position{}, fmt.Errorf("%w: %s: rollcall %q", sentinel.ErrInvalidPath, path, rollPart)
	}

	return models.Position{
		Congress: uint16(congress),
		Chamber:  chamber,
		Session:  uint8(session),
		Rollcall: uint32(rollcall),
		Year:     uint16(year),
	}, nil
}
