package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog/internal/gateway"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/go-chi/chi/v5"
)

const maxRequestBodySize = 1 << 20

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Render выводит результат адаптера без изменений.
func Render(w http.ResponseWriter, res gateway.Result) {
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}

	WriteJSON(w, res.Status, res.Body)
}

func WriteBadRequest(w http.ResponseWriter, err error) {
	Render(w, gateway.NewErrorResult(http.StatusBadRequest, err.Error()))
}

// parseProductID извлекает {id} из пути. GraphQL Int 32-битный, поэтому значения вне int32 отклоняются.
func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, e.ErrInvalidProductID
	}

	return id, nil
}

// decodeProductInput читает ProductInput из тела запроса. Неизвестные поля (id, createdAt) игнорируются.
func decodeProductInput(w http.ResponseWriter, r *http.Request) (gateway.ProductInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var in gateway.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return gateway.ProductInput{}, e.Wrap(err.Error(), e.ErrInvalidRequestBody)
	}

	return in, nil
}
