package publisher

//go:generate mockgen -source=publisher.go -destination=mocks/mocks.go -package=mocks Producer,TopicCreator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/mock/gomock"

	"rollcall/internal/votes/aggregate"
	"rollcall/internal/votes/models"
	"rollcall/internal/votes/publisher/mocks"
	"rollcall/pkg/platform/sentinel"
)

// =============================================================================
// Publisher Test Suite
// =============================================================================
// Justification for unit tests: the record key and payload are a contract
// with downstream consumers, and partial delivery must surface as a run-fatal
// error.

type PublisherSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	producer *mocks.MockProducer
	pub      *Publisher
	root     *models.Root
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.producer = mocks.NewMockProducer(s.ctrl)
	var err error
	s.pub, err = New(s.producer, "rollcall.records")
	s.Require().NoError(err)

	s.root = models.NewRoot()
	for _, v := range []models.UnifiedVote{
		{Chamber: models.ChamberSenate, CongressNumber: 116, SessionNumber: 2, RollcallNumber: 1, LegislatorID: "S289"},
		{Chamber: models.ChamberHouse, CongressNumber: 116, SessionNumber: 2, RollcallNumber: 1, LegislatorID: "A000370"},
		{Chamber: models.ChamberHouse, CongressNumber: 116, SessionNumber: 2, RollcallNumber: 1, LegislatorID: "B001"},
	} {
		aggregate.Insert(v, s.root)
	}
}

func (s *PublisherSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PublisherSuite) TestNew() {
	s.Run("nil producer returns error", func() {
		_, err := New(nil, "t")
		s.ErrorContains(err, "producer is required")
	})
	s.Run("empty topic returns error", func() {
		_, err := New(s.producer, "")
		s.ErrorContains(err, "topic is required")
	})
}

// =============================================================================
// PublishTree
// =============================================================================

func (s *PublisherSuite) TestPublishesOneRecordPerRollcall() {
	var sent []*kgo.Record
	s.producer.EXPECT().ProduceSync(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
			sent = rs
			results := make(kgo.ProduceResults, len(rs))
			for i, r := range rs {
				results[i] = kgo.ProduceResult{Record: r}
			}
			return results
		})

	n, err := s.pub.PublishTree(s.ctx, "run-1", s.root)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Require().Len(sent, 2)
	s.Equal("house/116/2/1", string(sent[0].Key))
	s.Equal("senate/116/2/1", string(sent[1].Key))
	s.Equal("rollcall.records", sent[0].Topic)

	var event Event
	s.Require().NoError(json.Unmarshal(sent[0].Value, &event))
	s.Equal("run-1", event.RunID)
	s.Equal(models.ChamberHouse, event.Chamber)
	s.Len(event.Record.VoteCasts, 2)
}

func (s *PublisherSuite) TestPartialDeliveryIsPublishError() {
	s.producer.EXPECT().ProduceSync(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
			return kgo.ProduceResults{
				{Record: rs[0]},
				{Record: rs[1], Err: errors.New("leader not available")},
			}
		})

	n, err := s.pub.PublishTree(s.ctx, "run-1", s.root)
	s.Equal(1, n)
	s.ErrorIs(err, sentinel.ErrPublish)
	s.ErrorContains(err, "leader not available")
}

func (s *PublisherSuite) TestEmptyTreeSendsNothing() {
	n, err := s.pub.PublishTree(s.ctx, "run-1", models.NewRoot())
	s.NoError(err)
	s.Zero(n)
}

func (s *PublisherSuite) TestClose() {
	s.producer.EXPECT().Close()
	s.pub.Close()
}

// =============================================================================
// EnsureTopic
// =============================================================================

func (s *PublisherSuite) TestEnsureTopic() {
	admin := mocks.NewMockTopicCreator(s.ctrl)

	s.Run("existing topic is fine", func() {
		admin.EXPECT().CreateTopics(gomock.Any(), int32(-1), int16(-1), gomock.Nil(), "rollcall.records").
			Return(kadm.CreateTopicResponses{"rollcall.records": {Topic: "rollcall.records", Err: kerr.TopicAlreadyExists}}, nil)
		s.NoError(EnsureTopic(s.ctx, admin, "rollcall.records"))
	})

	s.Run("broker refusal is publish error", func() {
		admin.EXPECT().CreateTopics(gomock.Any(), int32(-1), int16(-1), gomock.Nil(), "rollcall.records").
			Return(kadm.CreateTopicResponses{"rollcall.records": {Topic: "rollcall.records", Err: kerr.TopicAuthorizationFailed}}, nil)
		s.ErrorIs(EnsureTopic(s.ctx, admin, "rollcall.records"), sentinel.ErrPublish)
	})

	s.Run("request failure is publish error", func() {
		admin.EXPECT().CreateTopics(gomock.Any(), int32(-1), int16(-1), gomock.Nil(), "rollcall.records").
			Return(nil, errors.New("dial tcp: refused"))
		s.ErrorIs(EnsureTopic(s.ctx, admin, "rollcall.records"), sentinel.ErrPublish)
	})
}
