package api

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/models"
	"github.com/color-studio/api/scheduler"
	"github.com/color-studio/api/studio"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users   map[string]models.User
	devices map[string]models.UserDevice
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]models.User),
		devices: make(map[string]models.UserDevice),
	}
}

func noRows() error {
	return datastore.NoRowsError{NoRows: true, Err: sql.ErrNoRows}
}

func (f *fakeUserRepo) Create(user models.User) (models.User, error) {
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUserRepo) Get(userID string) (models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, noRows()
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, noRows()
}

func (f *fakeUserRepo) GetUserByUsername(username string) (models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, noRows()
}

func (f *fakeUserRepo) DeleteUserByID(userID string) error {
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) Update(user models.User) (models.User, error) {
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUserRepo) ValidateAndGetUser(creds models.Credentials) (models.User, error) {
	user, err := f.GetUserByEmail(creds.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := user.CheckPassword(creds.Password); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (f *fakeUserRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) CreateDevice(device models.UserDevice) error {
	f.devices[device.UserID+"/"+device.Fingerprint] = device
	return nil
}

func (f *fakeUserRepo) GetDeviceByFingerprint(userID, fingerprint string) (models.UserDevice, error) {
	device, ok := f.devices[userID+"/"+fingerprint]
	if !ok {
		return models.UserDevice{}, noRows()
	}
	return device, nil
}

func (f *fakeUserRepo) DeleteDevice(deviceID string) error {
	for key, device := range f.devices {
		if device.ID == deviceID {
			delete(f.devices, key)
		}
	}
	return nil
}

type fakeDailyRepo struct {
	byDay  map[string]models.DailyColor
	nextID int
}

func (f *fakeDailyRepo) Create(dc models.DailyColor) (models.DailyColor, error) {
	f.nextID++
	dc.ID = f.nextID
	f.byDay[dc.Date.Format("2006-01-02")] = dc
	return dc, nil
}

func (f *fakeDailyRepo) GetByDate(date time.Time) (models.DailyColor, error) {
	dc, ok := f.byDay[date.Format("2006-01-02")]
	if !ok {
		return models.DailyColor{}, noRows()
	}
	return dc, nil
}

func (f *fakeDailyRepo) GetToday() (models.DailyColor, error) {
	return f.GetByDate(time.Now())
}

func (f *fakeDailyRepo) GetAll() ([]models.DailyColor, error) {
	var all []models.DailyColor
	for _, dc := range f.byDay {
		all = append(all, dc)
	}
	return all, nil
}

func (f *fakeDailyRepo) Delete(id int) error {
	return nil
}

type fakeLibraryRepo struct {
	saved   map[string]models.Library
	saves   int
	saveErr error
}

func (f *fakeLibraryRepo) LoadLibrary(_ context.Context, userID string) (models.Library, error) {
	return f.saved[userID], nil
}

func (f *fakeLibraryRepo) SaveLibrary(_ context.Context, userID string, lib models.Library) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.saved[userID] = lib
	return nil
}

type testEnv struct {
	app     *Application
	handler http.Handler
	users   *fakeUserRepo
	daily   *fakeDailyRepo
	library *fakeLibraryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:   newFakeUserRepo(),
		daily:   &fakeDailyRepo{byDay: make(map[string]models.DailyColor)},
		library: &fakeLibraryRepo{saved: make(map[string]models.Library)},
	}
	env.app = &Application{
		Config: Config{
			JwtSecret:          testSecret,
			JwtAccessDuration:  900,
			JwtRefreshDuration: 3600,
			AllowedOrigins:     []string{"https://studio.example"},
			MaxUploadBytes:     1 << 20,
			PublicURL:          "http://studio.test",
		},
		UserRepo:       env.users,
		DailyColorRepo: env.daily,
		LibraryRepo:    env.library,
		Scheduler:      scheduler.NewScheduler(env.daily, rand.New(rand.NewSource(3))),
		Studio:         studio.NewRegistry(env.library),
		Extractions:    studio.NewExtractions(),
		Rand:           rand.New(rand.NewSource(42)),
	}
	env.handler = env.app.BuildRoutes(http.NewServeMux())
	return env
}

// signIn registers a user of the given kind and returns an access cookie for it
func (env *testEnv) signIn(t *testing.T, kind string) (models.User, *http.Cookie) {
	t.Helper()
	user, err := models.NewUser(models.UserSignupRequest{
		Username: "painter-" + kind,
		Email:    kind + "@studio.example",
		Password: "correct horse",
	})
	require.NoError(t, err)
	user.Kind = kind
	env.users.Create(user)

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, env.users.CreateDevice(models.UserDevice{ID: "device-" + kind, UserID: user.UserID, Fingerprint: "fp", Expiry: expiry}))

	token, err := models.SignToken(user, "fp", models.JWT.ACCESS_SCOPE, expiry, testSecret)
	require.NoError(t, err)
	return user, &http.Cookie{Name: models.JWT.ACCESS_COOKIE_NAME, Value: token}
}

var errSaveFailed = errors.New("library unavailable")
