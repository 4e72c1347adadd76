package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ctfarena/ctfarena/internal/dependencies/mocks"
	"github.com/ctfarena/ctfarena/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRecordVisitStampsTimeAndID() {
	visit, err := s.service.RecordVisit(s.ctx, "/challenges", "test-agent", "1.2.3.4", "user-1")
	s.Require().NoError(err)

	s.NotEmpty(visit.ID)
	s.Equal("/challenges", visit.Page)
	s.Equal("test-agent", visit.UserAgent)
	s.Equal("1.2.3.4", visit.IP)
	s.Equal(s.clock.Now(), visit.Timestamp)
}

func (s *ServiceSuite) TestRecordVisitAllowsAnonymous() {
	visit, err := s.service.RecordVisit(s.ctx, "/", "test-agent", "1.2.3.4", "")
	s.Require().NoError(err)
	s.Empty(visit.UserID)
}

func (s *ServiceSuite) TestVisitsReturnedInArrivalOrder() {
	_, _ = s.service.RecordVisit(s.ctx, "/first", "agent", "ip", "")
	s.clock.Advance(time.Minute)
	_, _ = s.service.RecordVisit(s.ctx, "/second", "agent", "ip", "")

	visits, err := s.service.Visits(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(visits, 2)
	s.Equal("/first", visits[0].Page)
	s.Equal("/second", visits[1].Page)
}
