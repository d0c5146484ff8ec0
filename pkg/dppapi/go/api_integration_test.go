//go:build unit

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpp40/dpp-go-components/internal/auth"
	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
	api "github.com/dpp40/dpp-go-components/internal/dppshell/api"
	persistence_inmemory "github.com/dpp40/dpp-go-components/internal/dppshell/persistence/inmemory"
	"github.com/dpp40/dpp-go-components/internal/dppshell/projection"
	visapi "github.com/dpp40/dpp-go-components/internal/visualization/api"
)

const (
	testContextPath = "/api/v1/dpp"
	testSecret      = "integration-secret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Use(auth.Middleware(common.AuthConfig{Enabled: true, Secret: testSecret}))

	db := persistence_inmemory.NewInMemoryShellDatabase()
	projector := projection.NewProjector()

	repoCtrl := NewDPPRepositoryAPIController(api.NewDPPRepositoryService(db, projector, false), testContextPath)
	visCtrl := NewVisualizationAPIController(visapi.NewVisualizationAPIService(db, projector), testContextPath)
	descCtrl := NewDescriptionAPIController(NewDescriptionAPIService(), testContextPath)

	for _, ctrl := range []Router{repoCtrl, visCtrl, descCtrl} {
		for _, rt := range ctrl.Routes() {
			r.Method(rt.Method, rt.Pattern, rt.HandlerFunc)
		}
	}

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, method, url, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if role != "" {
		req.Header.Set("Authorization", bearerFor(t, role))
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createTestShell(t *testing.T, server *httptest.Server, idShort string) model.ShellSummary {
	t.Helper()
	resp := doRequest(t, http.MethodPost, server.URL+testContextPath+"/shells", "",
		model.ShellCreateRequest{IdShort: idShort, ManufacturerName: "ACME"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[model.ShellSummary](t, resp)
}

func TestShellLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")
	assert.NotEmpty(t, created.ID)

	resp := doRequest(t, http.MethodGet, server.URL+testContextPath+"/shells/"+created.ID, "manufacturer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeBody[model.ShellView](t, resp)
	assert.Equal(t, "pump-1", view.IdShort)
	assert.Equal(t, model.DefaultSubmodelIdShorts, view.Submodels)

	resp = doRequest(t, http.MethodDelete, server.URL+testContextPath+"/shells/"+created.ID, "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, server.URL+testContextPath+"/shells/"+created.ID, "manufacturer", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoleFiltersShellDetailOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	resp := doRequest(t, http.MethodGet, server.URL+testContextPath+"/shells/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeBody[model.ShellView](t, resp)
	assert.Equal(t, []string{model.SubmodelNameplate}, view.Submodels)

	resp = doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/shells/"+created.ID+"/submodels/"+model.SubmodelMaterialComposition, "consumer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "hidden submodels answer like missing ones")

	resp = doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/shells/"+created.ID+"/submodels/"+model.SubmodelMaterialComposition, "recycler", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedIdentifierAnswers404(t *testing.T) {
	server := newTestServer(t)

	resp := doRequest(t, http.MethodGet, server.URL+testContextPath+"/shells/YQ==", "manufacturer", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	result := decodeBody[model.Result](t, resp)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Error", result.Messages[0].MessageType)
	assert.NotContains(t, result.Messages[0].Text, "Malformed", "response must not distinguish malformed from missing")
}

func TestInvalidIdShortAnswers400(t *testing.T) {
	server := newTestServer(t)

	resp := doRequest(t, http.MethodPost, server.URL+testContextPath+"/shells", "",
		model.ShellCreateRequest{IdShort: "has space"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDuplicateElementAnswers409(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")
	url := server.URL + testContextPath + "/shells/" + created.ID + "/submodels/" + model.SubmodelTechnicalData + "/elements"

	element := model.SubmodelElement{IdShort: "Weight", ValueType: model.ValueTypeFloat, Value: 12.4}
	resp := doRequest(t, http.MethodPost, url, "", element)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, url, "", element)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListingWithSearchOverHTTP(t *testing.T) {
	server := newTestServer(t)
	for _, idShort := range []string{"pump-a", "pump-b", "valve-a"} {
		createTestShell(t, server, idShort)
	}

	resp := doRequest(t, http.MethodGet, server.URL+testContextPath+"/shells?search=pump&limit=1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Result []model.ShellSummary `json:"result"`
		Total  int                  `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Result, 1)
	assert.Equal(t, "pump-a", page.Result[0].IdShort)
}

func TestDigitalTwinGraphJSONOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	resp := doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/digital-twin/"+created.ID+"?format=json", "manufacturer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	graph := decodeBody[model.GraphDescription](t, resp)
	assert.Equal(t, model.GraphViewDigitalTwin, graph.View)
	assert.Equal(t, created.ID, graph.ProductID)
	// shell root plus the four default submodels, seeded nameplate element on top
	assert.Len(t, graph.Nodes, 6)
	assert.Len(t, graph.Edges, 5)
}

func TestFreshShellTwinWithoutSeededFields(t *testing.T) {
	server := newTestServer(t)
	resp := doRequest(t, http.MethodPost, server.URL+testContextPath+"/shells", "",
		model.ShellCreateRequest{IdShort: "bare"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[model.ShellSummary](t, resp)

	resp = doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/digital-twin/"+created.ID+"?format=json", "manufacturer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	graph := decodeBody[model.GraphDescription](t, resp)
	assert.Len(t, graph.Nodes, 5)
	assert.Len(t, graph.Edges, 4)
}

func TestGraphRespectsRoleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	resp := doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/digital-twin/"+created.ID+"?format=json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	graph := decodeBody[model.GraphDescription](t, resp)
	for _, n := range graph.Nodes {
		assert.NotEqual(t, "submodel:"+model.SubmodelMaterialComposition, n.ID,
			"anonymous twin view must not contain hidden submodels")
	}
}

func TestRenderedGraphFormatsOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	for format, contentType := range map[string]string{
		"svg": "image/svg+xml",
		"png": "image/png",
	} {
		resp := doRequest(t, http.MethodGet,
			server.URL+testContextPath+"/visualization/lifecycle/"+created.ID+"?format="+format, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, contentType, resp.Header.Get("Content-Type"))
	}

	resp := doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/lifecycle/"+created.ID+"?format=pdf", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQRCodeOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	resp := doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/qrcode/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte{0x89, 'P', 'N', 'G'}))

	resp = doRequest(t, http.MethodGet,
		server.URL+testContextPath+"/visualization/qrcode/"+created.ID+"?size=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDescriptionOverHTTP(t *testing.T) {
	server := newTestServer(t)

	resp := doRequest(t, http.MethodGet, server.URL+testContextPath+"/description", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	desc := decodeBody[model.ServiceDescription](t, resp)
	assert.NotEmpty(t, desc.Profiles)
}

func TestPutSubmodelOverHTTP(t *testing.T) {
	server := newTestServer(t)
	created := createTestShell(t, server, "pump-1")

	url := fmt.Sprintf("%s%s/shells/%s/submodels/%s",
		server.URL, testContextPath, created.ID, model.SubmodelTechnicalData)
	resp := doRequest(t, http.MethodPut, url, "", model.Submodel{
		Elements: []model.SubmodelElement{
			{IdShort: "Voltage", ValueType: model.ValueTypeInteger, Value: 230},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, url, "manufacturer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sm := decodeBody[model.Submodel](t, resp)
	require.Len(t, sm.Elements, 1)
	assert.Equal(t, "Voltage", sm.Elements[0].IdShort)
	assert.Equal(t, float64(230), sm.Elements[0].Value, "JSON round trip hands numbers back as float64")
}
