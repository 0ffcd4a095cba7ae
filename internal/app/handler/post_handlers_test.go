package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/jmoralesv/vin-tracker/internal/app/service"
	"github.com/jmoralesv/vin-tracker/internal/mocks"
	"github.com/jmoralesv/vin-tracker/internal/models"
	"github.com/jmoralesv/vin-tracker/internal/storage"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandleAdd_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	rec := &models.VinRecord{ID: 1, VIN: "1HGCM82633A004352", CharCount: 17}
	m.EXPECT().
		Add(gomock.Any(), "1HGCM82633A004352", models.CollectionDelivery).
		Return(rec, nil)

	rr := postJSON(t, h.HandleAdd, `{"vin":"1HGCM82633A004352","type":"delivery"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp models.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "delivery")
}

func TestHandleAdd_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	m.EXPECT().
		Add(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &service.ConflictError{
			Existing: &models.VinRecord{
				ID: 4, VIN: "1HGCM82633A004352",
				Registered: true, RepeatCount: 2, CreatedAt: created,
			},
			Collection: models.CollectionService,
			Message:    "Este VIN ya existe en service (ID: 4)",
		})

	rr := postJSON(t, h.HandleAdd, `{"vin":"1HGCM82633A004352","type":"service"}`)

	require.Equal(t, http.StatusConflict, rr.Code)

	var resp models.ConflictResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsDuplicate)
	assert.False(t, resp.IsNotRegistered)
	assert.Equal(t, int64(4), resp.ExistingID)
	assert.Equal(t, models.CollectionService, resp.ExistingType)
	assert.Equal(t, 2, resp.RepeatCount)
	require.NotNil(t, resp.CreatedAt)
	assert.True(t, resp.CreatedAt.Equal(created))
}

func TestHandleAdd_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		Add(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &service.ValidationError{Reason: "VIN no puede estar vacío"})

	rr := postJSON(t, h.HandleAdd, `{"vin":"","type":"delivery"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VIN no puede estar vacío")
}

func TestHandleAdd_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewPost(mocks.NewMockVinServiceIface(ctrl), zap.NewNop())

	rr := postJSON(t, h.HandleAdd, `{"vin":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleAddRepeated(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		AddRepeated(gomock.Any(), "1HGCM82633A004352", models.CollectionService).
		Return(&models.VinRecord{ID: 4, RepeatCount: 3}, nil)

	rr := postJSON(t, h.HandleAddRepeated, `{"vin":"1HGCM82633A004352","type":"service"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "3 veces")
}

func TestHandleAddRepeated_DeliveryRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		AddRepeated(gomock.Any(), gomock.Any(), models.CollectionDelivery).
		Return(nil, service.ErrDeliveryRepeat)

	rr := postJSON(t, h.HandleAddRepeated, `{"vin":"1HGCM82633A004352","type":"delivery"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no se repiten")
}

func TestHandleDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		Delete(gomock.Any(), int64(99), models.CollectionDelivery).
		Return(storage.ErrNotFound)

	rr := postJSON(t, h.HandleDelete, `{"id":99,"type":"delivery"}`)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Registro no encontrado")
}

func TestHandleToggleRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		ToggleRegistered(gomock.Any(), int64(7), models.CollectionService).
		Return(&models.VinRecord{ID: 7, Registered: true}, nil)

	rr := postJSON(t, h.HandleToggleRegistered, `{"id":7,"type":"service"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "marcado como registrado")
}

func TestHandleRegisterAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		RegisterAll(gomock.Any(), models.CollectionAll, models.Filter{Date: "2026-08-29"}).
		Return(int64(5), nil)

	rr := postJSON(t, h.HandleRegisterAll(), `{"type":"all","date":"2026-08-29"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "5 registros registrados")
}

func TestHandleCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		Check(gomock.Any(), "1HGCM82633A004352", models.CollectionService).
		Return(models.CheckResponse{Success: true, Exists: true, IsNotRegistered: true, ExistingID: 3}, nil)

	rr := postJSON(t, h.HandleCheck, `{"vin":"1HGCM82633A004352","type":"service"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.CheckResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)
	assert.True(t, resp.IsNotRegistered)
}

func TestHandleImportText_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		Check(gomock.Any(), "1HGCM82633A004352", models.CollectionService).
		Return(models.CheckResponse{Success: true}, nil)

	body, _ := json.Marshal(models.ImportTextRequest{
		Text: "Services\n1HGCM82633A004352\n",
		Type: models.CollectionDelivery,
	})
	rr := postJSON(t, h.HandleImportText, string(body))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    models.ImportPreview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data.ToAdd, 1)
	assert.True(t, resp.Data.ToAdd[0].IsNew)
	assert.Equal(t, models.CollectionService, resp.Data.ToAdd[0].Type)
}

func TestHandleImportCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVinServiceIface(ctrl)
	h := NewPost(m, zap.NewNop())

	m.EXPECT().
		AddForImport(gomock.Any(), "1HGCM82633A004352", models.CollectionDelivery).
		Return(nil)
	m.EXPECT().
		AddRepeated(gomock.Any(), "5YJSA1E26MF000001", models.CollectionService).
		Return(&models.VinRecord{ID: 2, RepeatCount: 1}, nil)

	body := `[{"vin":"1HGCM82633A004352","type":"delivery","is_new":true},` +
		`{"vin":"5YJSA1E26MF000001","type":"service","is_repeated":true,"existing_id":2}]`
	rr := postJSON(t, h.HandleImportCommit, body)

	require.Equal(t, http.StatusOK, rr.Code)

	var result models.ImportResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Failed)
}

func TestHandleUpdate_WrongContentType(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewPost(mocks.NewMockVinServiceIface(ctrl), zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/", bytes.NewBufferString("vin=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.HandleUpdate(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}
