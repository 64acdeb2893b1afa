package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auction-api/internal/auth"
	"github.com/Skotchmaster/auction-api/internal/hash"
	"github.com/Skotchmaster/auction-api/internal/models"
	"github.com/Skotchmaster/auction-api/internal/repository"
	"github.com/Skotchmaster/auction-api/internal/validation"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	A         *AuthHandler
	P         *ProductHandler
	B         *BidHandler
	U         *UserHandler
	JWTSecret []byte
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Bid{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)

	e := echo.New()
	e.Validator = validation.New()

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	bids := repository.NewBidRepo(db)

	secret := []byte("test_secret")

	return &testEnv{
		T:         t,
		E:         e,
		DB:        db,
		A:         &AuthHandler{Users: users, JWTSecret: secret},
		P:         &ProductHandler{Products: products},
		B:         &BidHandler{Bids: bids, Products: products},
		U:         &UserHandler{Users: users},
		JWTSecret: secret,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(username string, admin bool) *models.User {
	passwordHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Admin:        admin,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) createProduct(seller *models.User, name string, price float64) *models.Product {
	product := models.Product{
		Name:          name,
		Description:   "a " + name,
		Category:      "misc",
		OriginalPrice: price,
		PictureURL:    "https://example.com/" + name + ".jpg",
		EndDate:       time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Second),
		SellerID:      seller.ID,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func (env *testEnv) createBid(product *models.Product, bidder *models.User, price float64) *models.Bid {
	bid := models.Bid{
		Price:     price,
		Date:      time.Now().UTC().Truncate(time.Second),
		ProductID: product.ID,
		BidderID:  bidder.ID,
	}
	require.NoError(env.T, env.DB.Create(&bid).Error)
	return &bid
}

func asUser(c echo.Context, u *models.User) {
	auth.SetPrincipal(c, auth.Principal{ID: u.ID, Admin: u.Admin})
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
