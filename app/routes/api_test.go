package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/app/routes"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/storage"
)

// stubGateway satisfies payment.Gateway without touching the network.
type stubGateway struct {
	lastAmount   int64
	lastCurrency string
}

func (g *stubGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	g.lastAmount = amount
	g.lastCurrency = currency
	return "pi_test_secret", nil
}

type testApp struct {
	store  *store.Memory
	server *httptest.Server
	client *http.Client
	gw     *stubGateway
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	s := store.NewMemory()
	gw := &stubGateway{}
	srv := httptest.NewServer(routes.New(s, gw))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{store: s, server: srv, client: &http.Client{Jar: jar}, gw: gw}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	return resp
}

// decode unwraps the response envelope's data field into out.
func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func (a *testApp) signIn(t *testing.T, email, name string) {
	t.Helper()

	resp := a.do(t, http.MethodPost, "/users", map[string]string{"name": name, "email": email})
	resp.Body.Close()

	resp = a.do(t, http.MethodPost, "/jwt", map[string]string{"email": email, "name": name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (a *testApp) signInAdmin(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "letmein")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	resp := a.do(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@pawhaven.app",
		"password": "letmein",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthAndUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, "/no-such-route", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterIsIdempotent(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/users", map[string]string{"name": "Jo", "email": "jo@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first map[string]interface{}
	decode(t, resp, &first)
	assert.NotEmpty(t, first["insertedId"])

	resp = app.do(t, http.MethodPost, "/users", map[string]string{"name": "Jo", "email": "jo@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second map[string]interface{}
	decode(t, resp, &second)
	assert.Nil(t, second["insertedId"])

	n, err := app.store.Count(context.Background(), models.ColUsers, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPetRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodPost, "/pets", map[string]string{"name": "Milo"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// browsing stays public
	resp = app.do(t, http.MethodGet, "/pets", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestPetLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/pets", map[string]string{
		"name": "Milo", "category": "Cat", "age": "2", "location": "Austin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decode(t, resp, &created)
	petID := created["insertedId"]
	require.NotEmpty(t, petID)

	// owner edits one field, the rest stays
	resp = app.do(t, http.MethodPut, "/pets/"+petID, map[string]string{"location": "Dallas"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Pet
	decode(t, resp, &updated)
	assert.Equal(t, "Dallas", updated.Location)
	assert.Equal(t, "Milo", updated.Name)
	assert.Equal(t, "jo@example.com", updated.UserEmail)
	assert.False(t, updated.Adopted)

	// owner marks it adopted
	resp = app.do(t, http.MethodPatch, "/pets/"+petID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adopted models.Pet
	decode(t, resp, &adopted)
	assert.True(t, adopted.Adopted)

	// and the public read now shows it
	resp = app.do(t, http.MethodGet, "/pets/"+petID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Pet
	decode(t, resp, &fetched)
	assert.True(t, fetched.Adopted)
}

func TestPetUpdateNeverInserts(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPut, "/pets/65a000000000000000000001", map[string]string{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	n, err := app.store.Count(context.Background(), models.ColPets, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPetUpdateForbiddenForStranger(t *testing.T) {
	app := newTestApp(t)

	id, err := app.store.Create(context.Background(), models.ColPets, models.Pet{
		Name: "Milo", UserEmail: "owner@example.com",
	})
	require.NoError(t, err)

	app.signIn(t, "intruder@example.com", "Intruder")

	resp := app.do(t, http.MethodPut, "/pets/"+id, map[string]string{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodDelete, "/pets/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestMemberCannotPauseCampaign(t *testing.T) {
	app := newTestApp(t)

	id, err := app.store.Create(context.Background(), models.ColCampaigns, models.DonationCampaign{
		Name: "Milo's surgery", UserEmail: "owner@example.com", MaxDonationLimit: 500,
	})
	require.NoError(t, err)

	// even the campaign owner cannot pause: that transition is admin only
	app.signIn(t, "owner@example.com", "Owner")
	resp := app.do(t, http.MethodPatch, "/admin/pause/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var camp models.DonationCampaign
	require.NoError(t, app.store.Get(context.Background(), models.ColCampaigns, id, &camp))
	assert.False(t, camp.Pause, "rejected transition must not write")
}

func TestAdminTransitions(t *testing.T) {
	app := newTestApp(t)
	app.signInAdmin(t)

	campID, err := app.store.Create(context.Background(), models.ColCampaigns, models.DonationCampaign{
		Name: "Milo's surgery", UserEmail: "owner@example.com", MaxDonationLimit: 500,
	})
	require.NoError(t, err)

	resp := app.do(t, http.MethodPatch, "/admin/pause/"+campID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var camp models.DonationCampaign
	require.NoError(t, app.store.Get(context.Background(), models.ColCampaigns, campID, &camp))
	assert.True(t, camp.Pause)

	resp = app.do(t, http.MethodPatch, "/admin/resume/"+campID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, app.store.Get(context.Background(), models.ColCampaigns, campID, &camp))
	assert.False(t, camp.Pause)

	resp = app.do(t, http.MethodPatch, "/admin/explode/"+campID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminDashboard(t *testing.T) {
	app := newTestApp(t)
	app.signInAdmin(t)

	ctx := context.Background()
	_, err := app.store.Create(ctx, models.ColPets, models.Pet{Name: "Milo", UserEmail: "jo@example.com"})
	require.NoError(t, err)
	_, err = app.store.Create(ctx, models.ColPayments, models.Payment{Email: "jo@example.com", Amount: 25})
	require.NoError(t, err)

	resp := app.do(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash struct {
		Pets      []models.Pet             `json:"pets"`
		Users     []models.User            `json:"users"`
		Donations []models.Payment         `json:"donations"`
		Adoptions []models.AdoptionRequest `json:"adoptions"`
	}
	decode(t, resp, &dash)
	assert.Len(t, dash.Pets, 1)
	assert.Len(t, dash.Donations, 1)
	assert.NotNil(t, dash.Users)
	assert.NotNil(t, dash.Adoptions)
}

func TestAdminLoginRejected(t *testing.T) {
	app := newTestApp(t)
	t.Setenv("ADMIN_PASSWORD", "letmein")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	resp := app.do(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@pawhaven.app",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// no session, so the admin surface stays closed
	resp = app.do(t, http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePaymentIntent(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/create-payment-intent", map[string]float64{"donationAmount": 10.00})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	decode(t, resp, &out)
	assert.Equal(t, "pi_test_secret", out["clientSecret"])
	assert.Equal(t, int64(1000), app.gw.lastAmount)
	assert.Equal(t, "usd", app.gw.lastCurrency)
}

func TestPaymentRecordAndOwnerListing(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/payments", map[string]interface{}{
		"ownerEmail":    "owner@example.com",
		"campId":        "c1",
		"amount":        25.0,
		"transactionId": "tx_1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, "/payments/owner@example.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payments []models.Payment
	decode(t, resp, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, "jo@example.com", payments[0].Email, "donor comes from the session")
	assert.Equal(t, 25.0, payments[0].Amount)

	// the full listing is admin only
	resp = app.do(t, http.MethodGet, "/payments", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdoptionRequestFlow(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/addtoadopt", map[string]string{
		"petId": "p1", "petName": "Milo", "phone": "555-0101", "address": "12 Oak St",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decode(t, resp, &created)
	require.NotEmpty(t, created["insertedId"])

	var req models.AdoptionRequest
	require.NoError(t, app.store.Get(context.Background(), models.ColAdoptions, created["insertedId"], &req))
	assert.Nil(t, req.AdoptReq, "new request starts pending")
	assert.Equal(t, "jo@example.com", req.UserEmail)
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodPost, "/pets", map[string]string{"name": "Milo"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	resp := app.do(t, http.MethodPost, "/pets", map[string]string{"category": "Cat"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodPost, "/create-payment-intent", map[string]float64{"donationAmount": -3})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestBadObjectID(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodGet, "/pets/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCategoryStrip(t *testing.T) {
	app := newTestApp(t)

	for _, c := range []string{"Cat", "Dog"} {
		_, err := app.store.Create(context.Background(), models.ColCategories, models.PetCategory{Category: c})
		require.NoError(t, err)
	}

	resp := app.do(t, http.MethodGet, "/PetCategory", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []models.PetCategory
	decode(t, resp, &cats)
	assert.Len(t, cats, 2)
}

func TestByCategoryFilter(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	for _, p := range []models.Pet{
		{Name: "Milo", Category: "Cat", UserEmail: "jo@example.com"},
		{Name: "Rex", Category: "Dog", UserEmail: "jo@example.com"},
	} {
		_, err := app.store.Create(ctx, models.ColPets, p)
		require.NoError(t, err)
	}

	resp := app.do(t, http.MethodGet, "/petbycategory/Cat", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pets []models.Pet
	decode(t, resp, &pets)
	require.Len(t, pets, 1)
	assert.Equal(t, "Milo", pets[0].Name)
}


func TestUploadImage(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	t.Setenv("STORAGE_URL", "http://localhost:5007/storage")
	storage.Connect()

	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/upload-image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]string
	decode(t, resp, &out)
	assert.Contains(t, out["url"], "http://localhost:5007/storage/images/")
	assert.Contains(t, out["url"], ".png")
}

func TestUploadRejectsNonImage(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()

	app := newTestApp(t)
	app.signIn(t, "jo@example.com", "Jo")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "payload.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/upload-image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}
