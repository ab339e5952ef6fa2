package scheduler

import (
	"database/sql"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/models"
)

type fakeDailyRepo struct {
	byDay   map[string]models.DailyColor
	nextID  int
	failErr error
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{byDay: make(map[string]models.DailyColor)}
}

func (f *fakeDailyRepo) Create(dc models.DailyColor) (models.DailyColor, error) {
	if f.failErr != nil {
		return models.DailyColor{}, f.failErr
	}
	f.nextID++
	dc.ID = f.nextID
	f.byDay[dc.Date.Format("2006-01-02")] = dc
	return dc, nil
}

func (f *fakeDailyRepo) GetByDate(date time.Time) (models.DailyColor, error) {
	dc, ok := f.byDay[date.Format("2006-01-02")]
	if !ok {
		return models.DailyColor{}, datastore.NoRowsError{NoRows: true, Err: sql.ErrNoRows}
	}
	return dc, nil
}

func (f *fakeDailyRepo) GetToday() (models.DailyColor, error) { return f.GetByDate(time.Now()) }

func (f *fakeDailyRepo) GetAll() ([]models.DailyColor, error) {
	var all []models.DailyColor
	for _, dc := range f.byDay {
		all = append(all, dc)
	}
	return all, nil
}

func (f *fakeDailyRepo) Delete(int) error { return nil }

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)
}

func TestGenerateDailyColor(t *testing.T) {
	repo := newFakeDailyRepo()
	s := NewScheduler(repo, rand.New(rand.NewSource(7)))
	s.Now = fixedNow

	first, err := s.GenerateDailyColor()
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, colors.NearestName(first.Color()), first.ColorName)

	again, err := s.GenerateDailyColor()
	require.NoError(t, err)
	assert.Equal(t, first, again, "a day keeps its color")
	assert.Len(t, repo.byDay, 1)
}

func TestGenerateReplaces(t *testing.T) {
	repo := newFakeDailyRepo()
	s := NewScheduler(repo, rand.New(rand.NewSource(7)))
	day := fixedNow()

	_, err := s.Generate(day)
	require.NoError(t, err)
	second, err := s.Generate(day)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Len(t, repo.byDay, 1)
}

func TestGenerateStoreFailure(t *testing.T) {
	repo := newFakeDailyRepo()
	repo.failErr = errors.New("db down")
	s := NewScheduler(repo, nil)
	s.Now = fixedNow

	_, err := s.GenerateDailyColor()
	assert.ErrorContains(t, err, "db down")
}

func TestUntilMidnight(t *testing.T) {
	assert.Equal(t, 8*time.Hour+30*time.Minute, UntilMidnight(fixedNow()))
	assert.Equal(t, 24*time.Hour, UntilMidnight(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestStopTwice(t *testing.T) {
	s := NewScheduler(newFakeDailyRepo(), rand.New(rand.NewSource(1)))
	s.Now = fixedNow
	s.Start()

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}
