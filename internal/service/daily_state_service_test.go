package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type dailyStateKey struct {
	studentID int64
	date      string
}

type dailyStateRepoStub struct {
	roster   []models.DailyStateRow
	grades   map[dailyStateKey]int
	statuses map[dailyStateKey]models.AttendanceStatus
	listArgs []dailyStateKey
	err      error
}

func newDailyStateRepoStub(roster ...models.DailyStateRow) *dailyStateRepoStub {
	return &dailyStateRepoStub{
		roster:   roster,
		grades:   map[dailyStateKey]int{},
		statuses: map[dailyStateKey]models.AttendanceStatus{},
	}
}

func (s *dailyStateRepoStub) List(_ context.Context, classID int64, date string) ([]models.DailyStateRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.listArgs = append(s.listArgs, dailyStateKey{classID, date})
	rows := make([]models.DailyStateRow, 0, len(s.roster))
	for _, r := range s.roster {
		key := dailyStateKey{r.ID, date}
		if g, ok := s.grades[key]; ok {
			grade := g
			r.Grade = &grade
		}
		if st, ok := s.statuses[key]; ok {
			status := st
			r.Status = &status
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *dailyStateRepoStub) UpsertGrade(_ context.Context, studentID int64, date string, grade int) error {
	if s.err != nil {
		return s.err
	}
	s.grades[dailyStateKey{studentID, date}] = grade
	return nil
}

func (s *dailyStateRepoStub) UpsertStatus(_ context.Context, studentID int64, date string, status models.AttendanceStatus) error {
	if s.err != nil {
		return s.err
	}
	s.statuses[dailyStateKey{studentID, date}] = status
	return nil
}

type classListerStub struct {
	classes []models.Class
	err     error
}

func (s classListerStub) List(context.Context) ([]models.Class, error) {
	return s.classes, s.err
}

func newDailyStateService(repo *dailyStateRepoStub, classes classLister) *DailyStateService {
	svc := NewDailyStateService(repo, classes, nil, nil, nil, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestDailyStateServiceListAppliesDefaults(t *testing.T) {
	repo := newDailyStateRepoStub(
		models.DailyStateRow{ID: 1, NIPD: "1001", FullName: "Ani"},
		models.DailyStateRow{ID: 2, NIPD: "1002", FullName: "Budi", HasNotes: true},
	)
	svc := newDailyStateService(repo, classListerStub{})

	states, err := svc.List(context.Background(), DailyStateQuery{ClassID: 3, Date: "2024-01-15"})
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, st := range states {
		assert.Equal(t, 0, st.Grade)
		assert.Equal(t, models.AttendanceStatusPresent, st.Status)
	}
	assert.True(t, states[1].HasNotes)
}

func TestDailyStateServiceStatusOverwrite(t *testing.T) {
	repo := newDailyStateRepoStub(models.DailyStateRow{ID: 1, FullName: "Ani"})
	svc := newDailyStateService(repo, classListerStub{})
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, 1, StatusRequest{Date: "2024-01-15", Status: "Izin"}))
	require.NoError(t, svc.SetStatus(ctx, 1, StatusRequest{Date: "2024-01-15", Status: "Alpa"}))
	assert.Len(t, repo.statuses, 1)

	states, err := svc.List(ctx, DailyStateQuery{ClassID: 3, Date: "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusAbsent, states[0].Status)

	states, err = svc.List(ctx, DailyStateQuery{ClassID: 3, Date: "2024-01-16"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, states[0].Status)
}

func TestDailyStateServiceSetGradeDefaultsToToday(t *testing.T) {
	repo := newDailyStateRepoStub()
	svc := newDailyStateService(repo, classListerStub{})

	grade := 88
	require.NoError(t, svc.SetGrade(context.Background(), 4, GradeRequest{Grade: &grade}))
	assert.Equal(t, 88, repo.grades[dailyStateKey{4, "2024-01-15"}])
}

func TestDailyStateServiceValidation(t *testing.T) {
	repo := newDailyStateRepoStub()
	svc := newDailyStateService(repo, classListerStub{})
	ctx := context.Background()

	_, err := svc.List(ctx, DailyStateQuery{ClassID: 3})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.List(ctx, DailyStateQuery{ClassID: 3, Date: "15-01-2024"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	err = svc.SetStatus(ctx, 1, StatusRequest{Date: "2024-01-15", Status: "Bolos"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	tooHigh := 101
	err = svc.SetGrade(ctx, 1, GradeRequest{Date: "2024-01-15", Grade: &tooHigh})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	err = svc.SetGrade(ctx, 1, GradeRequest{Date: "2024-01-15"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, repo.grades)
	assert.Empty(t, repo.statuses)
}

func TestDailyStateServiceStoreFailure(t *testing.T) {
	repo := newDailyStateRepoStub()
	repo.err = errors.New("connection refused")
	svc := newDailyStateService(repo, classListerStub{})

	_, err := svc.List(context.Background(), DailyStateQuery{ClassID: 3, Date: "2024-01-15"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.NotContains(t, appErr.Message, "connection refused")
}

func TestDailyStateServiceInitialData(t *testing.T) {
	repo := newDailyStateRepoStub(models.DailyStateRow{ID: 1, FullName: "Ani"})
	classes := classListerStub{classes: []models.Class{{ID: 7, ClassName: "X IPA 1"}, {ID: 3, ClassName: "X IPA 2"}}}
	svc := newDailyStateService(repo, classes)

	data, err := svc.InitialData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.ClassID)
	assert.Equal(t, int64(7), *data.ClassID)
	assert.Equal(t, "2024-01-15", data.Date)
	assert.Len(t, data.Students, 1)
	assert.Equal(t, []dailyStateKey{{7, "2024-01-15"}}, repo.listArgs)
}

func TestDailyStateServiceInitialDataWithoutClasses(t *testing.T) {
	svc := newDailyStateService(newDailyStateRepoStub(), classListerStub{})

	data, err := svc.InitialData(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data.ClassID)
	assert.Empty(t, data.Classes)
	assert.Empty(t, data.Students)
}
