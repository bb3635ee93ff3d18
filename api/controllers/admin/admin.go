package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/catalog-backend/api/responses"
	"github.com/angelmondragon/catalog-backend/api/validators"
	adminsvc "github.com/angelmondragon/catalog-backend/internal/admin"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
	"github.com/angelmondragon/catalog-backend/pkg/logger"
	"github.com/angelmondragon/catalog-backend/pkg/pagination"
)

// Service is the console surface the handlers need.
type Service interface {
	Registry() *adminsvc.Registry
	List(ctx context.Context, entity string, params adminsvc.ListParams) (*adminsvc.ListResult, error)
	Get(ctx context.Context, entity string, id uuid.UUID) (adminsvc.Row, error)
	Create(ctx context.Context, entity string, decode adminsvc.Decoder) (adminsvc.Row, error)
	Update(ctx context.Context, entity string, id uuid.UUID, decode adminsvc.Decoder) (adminsvc.Row, error)
	Delete(ctx context.Context, entity string, id uuid.UUID) error
	SuggestSlug(ctx context.Context, entity, name string) (string, error)
}

// reserved query keys; every other key is a list filter
var reservedParams = map[string]struct{}{"q": {}, "limit": {}, "cursor": {}}

// Entities describes every registered entity: columns, filters, fieldsets
// and inlines.
func Entities(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Registry().Entities())
	}
}

func List(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := map[string]string{}
		for key, values := range r.URL.Query() {
			if _, ok := reservedParams[key]; ok || len(values) == 0 {
				continue
			}
			filters[key] = values[0]
		}

		result, err := svc.List(r.Context(), chi.URLParam(r, "entity"), adminsvc.ListParams{
			Search:  validators.ParseQueryString(r, "q", 200),
			Filters: filters,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: validators.ParseQueryString(r, "cursor", 256),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, result.Rows, result.NextCursor)
	}
}

func Get(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), chi.URLParam(r, "entity"), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func Create(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := svc.Create(r.Context(), chi.URLParam(r, "entity"), bodyDecoder(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func Update(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Update(r.Context(), chi.URLParam(r, "entity"), id, bodyDecoder(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func Delete(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "entity"), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// SuggestSlug prefills the slug field from ?name=.
func SuggestSlug(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := validators.ParseQueryString(r, "name", 255)
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "name is required").
				WithDetails(map[string]string{"name": "is required"}))
			return
		}
		s, err := svc.SuggestSlug(r.Context(), chi.URLParam(r, "entity"), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"slug": s})
	}
}

func bodyDecoder(r *http.Request) adminsvc.Decoder {
	return func(dest any) error {
		return validators.DecodeJSONBody(r, dest)
	}
}
