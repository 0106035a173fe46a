package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventx/namecard-services/internal/cardsvc/handlers"
	"github.com/eventx/namecard-services/internal/cardsvc/models"
	"github.com/eventx/namecard-services/internal/cardsvc/ratelimit"
	"github.com/eventx/namecard-services/internal/cardsvc/service"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
	"github.com/eventx/namecard-services/internal/cardsvc/store/storetest"
	"github.com/eventx/namecard-services/internal/cardsvc/web"
)

var userHeaders = []string{
	"id", "name", "title", "company", "Area Code", "phone", "Is Whatsapp",
	"email", "linkedin", "others", "bio", "avatar", "password",
	"created_at", "referred_by",
}

var salesHeaders = []string{
	"id", "name", "title", "company", "Area Code", "phone", "is_whatsapp",
	"email", "LinkedIn URL",
}

type fixture struct {
	router *chi.Mux
	users  *storetest.Table
	sales  *storetest.Table
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	opener := storetest.NewOpener()
	users := opener.Add("User_Cards", userHeaders)
	sales := opener.Add("Internal_Sales", salesHeaders)

	cardService := service.NewCardService(store.NewCardStore(opener, "User_Cards", models.UserCardFields))
	salesService := service.NewSalesService(store.NewCardStore(opener, "Internal_Sales", models.SalesCardFields))

	pages, err := web.NewRenderer()
	require.NoError(t, err)

	h := handlers.NewHandler(cardService, salesService, ratelimit.New(60*time.Second), pages)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)

	return &fixture{router: r, users: users, sales: sales}
}

func (f *fixture) do(t *testing.T, method, path, ip string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func adaInput() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Ada Lovelace",
		"title":    "Engineer",
		"company":  "Acme",
		"phone":    "5551234",
		"email":    "ada@acme.test",
		"password": "hunter2",
	}
}

func (f *fixture) createCard(t *testing.T, ip string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/v1/cards", ip, adaInput())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCard(t *testing.T) {
	f := newFixture(t)

	id := f.createCard(t, "9.9.9.9")
	assert.Len(t, id, 8)
	assert.Equal(t, 1, f.users.Len())
	assert.Equal(t, "Ada Lovelace", f.users.Value(0, models.FieldName))
}

func TestCreateCardMissingFields(t *testing.T) {
	f := newFixture(t)

	input := adaInput()
	delete(input, "company")
	w := f.do(t, http.MethodPost, "/v1/cards", "9.9.9.9", input)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "company")
	assert.Equal(t, 0, f.users.Len())
}

func TestCreateCardRateLimited(t *testing.T) {
	f := newFixture(t)

	f.createCard(t, "1.1.1.1")

	w := f.do(t, http.MethodPost, "/v1/cards", "1.1.1.1", adaInput())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, f.users.Len())

	// a different client is not throttled
	w = f.do(t, http.MethodPost, "/v1/cards", "2.2.2.2", adaInput())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCardNoForwardedForSharesPlaceholderKey(t *testing.T) {
	f := newFixture(t)

	f.createCard(t, "")
	w := f.do(t, http.MethodPost, "/v1/cards", "", adaInput())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestVerifyCard(t *testing.T) {
	f := newFixture(t)
	id := f.createCard(t, "9.9.9.9")

	w := f.do(t, http.MethodPost, "/v1/cards/verify", "", map[string]string{"id": id, "password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	card := body["card"].(map[string]interface{})
	assert.Equal(t, "Ada Lovelace", card["name"])
	assert.Equal(t, false, card["is_whatsapp"])

	w = f.do(t, http.MethodPost, "/v1/cards/verify", "", map[string]string{"id": id, "password": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPost, "/v1/cards/verify", "", map[string]string{"id": "missing1", "password": "hunter2"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/v1/cards/verify", "", map[string]string{"id": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditCard(t *testing.T) {
	f := newFixture(t)
	id := f.createCard(t, "9.9.9.9")

	w := f.do(t, http.MethodPut, "/v1/cards/edit", "", map[string]interface{}{
		"id": id, "password": "hunter2", "name": "New Name",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "New Name", f.users.Value(0, models.FieldName))
	assert.Equal(t, "Engineer", f.users.Value(0, models.FieldTitle))

	w = f.do(t, http.MethodPut, "/v1/cards/edit", "", map[string]interface{}{
		"id": id, "password": "wrong", "name": "Hacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "New Name", f.users.Value(0, models.FieldName))

	w = f.do(t, http.MethodPut, "/v1/cards/edit", "", map[string]interface{}{
		"id": "missing1", "password": "hunter2",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/v1/cards/edit", "", map[string]interface{}{"id": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardPage(t *testing.T) {
	f := newFixture(t)
	id := f.createCard(t, "9.9.9.9")

	w := f.do(t, http.MethodGet, "/user/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Lovelace")
	assert.Contains(t, w.Body.String(), "ada@acme.test")

	w = f.do(t, http.MethodGet, "/user/unknown1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Card Not Found")
}

func TestEditPage(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/user/abc123/edit", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc123")
}

func TestSalesCardPage(t *testing.T) {
	f := newFixture(t)
	f.sales.Seed(map[string]string{
		models.FieldID:      "sales001",
		models.FieldName:    "Sam Seller",
		models.FieldTitle:   "Account Exec",
		models.FieldCompany: "EventX",
		models.FieldPhone:   "5559999",
		models.FieldEmail:   "sam@eventx.test",
	})

	w := f.do(t, http.MethodGet, "/c/sales001", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sam Seller")

	w = f.do(t, http.MethodGet, "/c/unknown1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalSalesListRequiresToken(t *testing.T) {
	f := newFixture(t)
	f.sales.Seed(map[string]string{models.FieldID: "sales001", models.FieldName: "Sam Seller"})

	w := f.do(t, http.MethodGet, "/v1/internal/cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, token, err := tokenAuth.Encode(map[string]interface{}{
		"service_id": 1,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/internal/cards", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Sam Seller")
}

func TestHomeAndCreatePages(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/create", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Create Your Card")
}
