package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webDevBody = `{"name":"Web Dev","description":"Sitios web","price":100.00,"category":"Design",` +
	`"stock":3,"inPromotion":true,"discountPercent":10,"imageUrl":"https://cdn.test/web.png","features":["a","b"]}`

func createService(t *testing.T, env *testEnv, body string) map[string]any {
	t.Helper()
	resp, raw := env.do(t, http.MethodPost, "/api/services", body, env.bearer(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	data, ok := decode(t, raw)["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestCreate_201ConLocation(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, http.MethodPost, "/api/services", webDevBody, env.bearer(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	body := decode(t, raw)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Servicio creado exitosamente", body["message"])
	data := body["data"].(map[string]any)
	id, _ := data["serviceId"].(string)
	require.NotEmpty(t, id)

	assert.Equal(t, "/api/services/"+id, resp.Header.Get("Location"))
	assert.Equal(t, adminID, data["createdBy"])
	assert.Equal(t, true, data["isActive"])
	assert.Equal(t, []any{"a", "b"}, data["features"])
	assert.Contains(t, string(raw), `"price":100.00`, "precio como número con dos decimales")
}

func TestCreate_SinToken401(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodPost, "/api/services", webDevBody, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.services.rows)
}

func TestCreate_Validacion400(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, http.MethodPost, "/api/services",
		`{"name":"","price":-5,"category":"Design","discountPercent":300}`, env.bearer(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, raw)
	assert.Equal(t, "Datos inválidos", body["message"])
	errs, _ := body["errors"].([]any)
	assert.Len(t, errs, 3, "name, discountPercent y price")
}

func TestCreate_FueraDeRangoDeColumna400(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.do(t, http.MethodPost, "/api/services",
		`{"name":"Web","price":100000000000000000,"category":"Dev","stock":3000000000}`, env.bearer(t))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	body := decode(t, raw)
	assert.Nil(t, body["error"], "sin texto del driver")
	errs, _ := body["errors"].([]any)
	assert.Len(t, errs, 2, "stock y price")
	assert.Empty(t, env.services.rows)
}

func TestCreate_CuerpoMalformado400(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodPost, "/api/services", `{"name":`, env.bearer(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetByID(t *testing.T) {
	env := newTestEnv(t)
	created := createService(t, env, webDevBody)
	id := created["serviceId"].(string)

	resp, raw := env.do(t, http.MethodGet, "/api/services/"+id, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "Servicio encontrado", body["message"])
	assert.Equal(t, "Web Dev", body["data"].(map[string]any)["name"])

	resp, raw = env.do(t, http.MethodGet, "/api/services/no-existe", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Servicio con ID no-existe no encontrado", decode(t, raw)["message"])
}

func TestListYSearch(t *testing.T) {
	env := newTestEnv(t)
	createService(t, env, `{"name":"Web Dev","category":"Design","price":100.00}`)
	createService(t, env, `{"name":"Hosting","category":"Infra","price":20}`)

	resp, raw := env.do(t, http.MethodGet, "/api/services", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, raw)
	assert.Equal(t, "Servicios obtenidos exitosamente", list["message"])
	assert.EqualValues(t, 2, list["count"])
	first := list["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Hosting", first["name"], "más recientes primero")

	resp, raw = env.do(t, http.MethodGet, "/api/services/search?term=Web", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode(t, raw)
	assert.Equal(t, "Búsqueda completada", found["message"])
	assert.EqualValues(t, 1, found["count"])

	_, raw = env.do(t, http.MethodGet, "/api/services/search?term=zzz", "", "")
	none := decode(t, raw)
	assert.EqualValues(t, 0, none["count"])
	assert.Equal(t, []any{}, none["data"], "lista vacía, no null")

	_, raw = env.do(t, http.MethodGet, "/api/services/search?term=%20%20", "", "")
	assert.EqualValues(t, 2, decode(t, raw)["count"], "término en blanco equivale a listar")
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	created := createService(t, env, webDevBody)
	id := created["serviceId"].(string)

	resp, raw := env.do(t, http.MethodPut, "/api/services/"+id,
		`{"name":"Web Dev Pro","category":"Design","price":150.5}`, env.bearer(t))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, "Servicio actualizado exitosamente", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Web Dev Pro", data["name"])
	assert.Equal(t, []any{}, data["features"])
	assert.NotEqual(t, created["updatedAt"], data["updatedAt"])
	assert.Equal(t, created["createdAt"], data["createdAt"])

	resp, _ = env.do(t, http.MethodPut, "/api/services/"+id, `{"name":"x","category":"y","price":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/services/8d1f6f0e-0000-4000-8000-000000000000",
		`{"name":"x","category":"y","price":1}`, env.bearer(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	created := createService(t, env, webDevBody)
	id := created["serviceId"].(string)

	resp, _ := env.do(t, http.MethodDelete, "/api/services/"+id, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := env.do(t, http.MethodDelete, "/api/services/"+id, "", env.bearer(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Servicio eliminado exitosamente", decode(t, raw)["message"])

	resp, _ = env.do(t, http.MethodGet, "/api/services/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, raw = env.do(t, http.MethodGet, "/api/services", "", "")
	assert.EqualValues(t, 0, decode(t, raw)["count"])

	resp, _ = env.do(t, http.MethodDelete, "/api/services/8d1f6f0e-0000-4000-8000-000000000000", "", env.bearer(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogo_FalloDeRepositorio500(t *testing.T) {
	env := newTestEnv(t)
	env.services.err = errors.New("timeout")

	resp, raw := env.do(t, http.MethodGet, "/api/services", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "Error al obtener servicios", body["message"])
	assert.Contains(t, body["error"], "timeout")
}
