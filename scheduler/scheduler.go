package scheduler

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/models"
)

// Scheduler picks a color of the day at local midnight
type Scheduler struct {
	DailyColorRepo datastore.DailyColorRepository
	Now            func() time.Time

	mu       sync.Mutex
	rng      *rand.Rand
	timer    *time.Timer
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(repo datastore.DailyColorRepository, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{
		DailyColorRepo: repo,
		Now:            time.Now,
		rng:            rng,
		done:           make(chan struct{}),
	}
}

// UntilMidnight is the wait from now to the next local midnight
func UntilMidnight(now time.Time) time.Duration {
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return nextMidnight.Sub(now)
}

// Start makes sure today has a color, then generates one at every midnight
func (s *Scheduler) Start() {
	if _, err := s.GenerateDailyColor(); err != nil {
		log.Printf("Error generating initial daily color: %v", err)
	}

	wait := UntilMidnight(s.Now())
	log.Printf("Scheduler started. Next daily color generation in %v", wait)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(wait, func() {
		s.GenerateDailyColor()

		s.mu.Lock()
		s.ticker = time.NewTicker(24 * time.Hour)
		ticker := s.ticker
		s.mu.Unlock()

		go func() {
			for {
				select {
				case <-ticker.C:
					s.GenerateDailyColor()
				case <-s.done:
					return
				}
			}
		}()
	})
}

// Stop stops the scheduler. Calling it again does nothing.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		log.Println("Scheduler stopped")
	})
}

// GenerateDailyColor picks, names and stores today's color. An existing
// color for today is returned unchanged.
func (s *Scheduler) GenerateDailyColor() (models.DailyColor, error) {
	today := models.NormalizeDay(s.Now())

	existingColor, err := s.DailyColorRepo.GetByDate(today)
	if err == nil && existingColor.ID != 0 {
		log.Printf("Daily color already exists for %s: %s", today.Format("2006-01-02"), existingColor.ColorName)
		return existingColor, nil
	}

	return s.Generate(today)
}

// Generate stores a fresh random color for day, replacing any existing one
func (s *Scheduler) Generate(day time.Time) (models.DailyColor, error) {
	log.Println("Generating daily color...")

	s.mu.Lock()
	c := colors.Random(s.rng)
	s.mu.Unlock()

	savedColor, err := s.DailyColorRepo.Create(models.NewDailyColor(day, c))
	if err != nil {
		log.Printf("Error saving daily color to database: %v", err)
		return models.DailyColor{}, err
	}

	log.Printf("Successfully generated daily color: %s (%s) for %s",
		savedColor.ColorName, c.Hex(), savedColor.Date.Format("2006-01-02"))

	return savedColor, nil
}
