package api

import (
	"math/rand"
	"sync"
	"time"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/scheduler"
	"github.com/color-studio/api/studio"
)

type Config struct {
	HTTPPort           string
	DatabaseType       string
	DatabaseHost       string
	DatabaseUser       string
	DatabasePassword   string
	DatabaseName       string
	SSLMode            string
	JwtSecret          string
	JwtAccessDuration  int // seconds
	JwtRefreshDuration int // seconds
	JwtDomain          string
	AllowedOrigins     []string
	DevMode            bool
	MaxUploadBytes     int64
	MaxImagePixels     int64
	SessionIdle        time.Duration
	PublicURL          string
}

type Application struct {
	Config         Config
	UserRepo       datastore.UserRepository
	DailyColorRepo datastore.DailyColorRepository
	LibraryRepo    datastore.LibraryRepository
	Scheduler      *scheduler.Scheduler
	Studio         *studio.Registry
	Extractions    *studio.Extractions

	rngMu sync.Mutex
	Rand  *rand.Rand
}

// random runs fn with the shared generator held exclusively
func (app *Application) random(fn func(*rand.Rand) colors.Color) colors.Color {
	app.rngMu.Lock()
	defer app.rngMu.Unlock()
	return fn(app.Rand)
}
