package messaging

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mkostin/catalog_service/internal/catalog/command"
	"github.com/mkostin/catalog_service/internal/catalog/cqrs"
	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
	"github.com/mkostin/catalog_service/internal/catalog/query"
	"github.com/shopspring/decimal"
)

// Request payloads. Shape constraints (presence, identifier format) are
// enforced here; value invariants (price bounds, name content) belong to the
// entity.
type createRequest struct {
	Name  string           `json:"name"  validate:"required"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

type findAllRequest struct {
	Page  int32 `json:"page"  validate:"omitempty,gte=1"`
	Limit int32 `json:"limit" validate:"omitempty,gte=1"`
}

type findOneRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type updateRequest struct {
	ID    string           `json:"id" validate:"required,uuid"`
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type deleteRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type validateRequest struct {
	IDs []string `json:"ids" validate:"omitempty,dive,uuid"`
}

// decodeFunc turns a raw payload into an intent or a ValidationError.
type decodeFunc func(data []byte) (cqrs.Intent, error)

func (s *Server) decoders() map[string]decodeFunc {
	return map[string]decodeFunc{
		"create":   s.decodeCreate,
		"find_all": s.decodeFindAll,
		"find_one": s.decodeFindOne,
		"update":   s.decodeUpdate,
		"delete":   s.decodeDelete,
		"validate": s.decodeValidate,
	}
}

func (s *Server) decodeCreate(data []byte) (cqrs.Intent, error) {
	var req createRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	return command.CreateProduct{Name: req.Name, Price: *req.Price}, nil
}

func (s *Server) decodeFindAll(data []byte) (cqrs.Intent, error) {
	var req findAllRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	return query.FindAllProducts{Page: req.Page, Limit: req.Limit}, nil
}

func (s *Server) decodeFindOne(data []byte) (cqrs.Intent, error) {
	var req findOneRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return query.FindOneProduct{ID: id}, nil
}

func (s *Server) decodeUpdate(data []byte) (cqrs.Intent, error) {
	var req updateRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return command.UpdateProduct{ID: id, Name: req.Name, Price: req.Price}, nil
}

func (s *Server) decodeDelete(data []byte) (cqrs.Intent, error) {
	var req deleteRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return command.DeleteProduct{ID: id}, nil
}

func (s *Server) decodeValidate(data []byte) (cqrs.Intent, error) {
	var req validateRequest
	if err := s.unmarshal(data, &req); err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return query.ValidateProducts{IDs: ids}, nil
}

// unmarshal decodes and shape-validates a request payload.
func (s *Server) unmarshal(data []byte, req any) error {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, req); err != nil {
		return catalogerrors.NewValidationError("malformed request payload: %v", err)
	}
	if err := s.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, len(validationErrors))
			for i, fieldErr := range validationErrors {
				fields[i] = fmt.Sprintf("%s failed on rule %q", fieldErr.Field(), fieldErr.Tag())
			}
			return catalogerrors.NewValidationError("invalid request: %v", fields)
		}
		return catalogerrors.NewValidationError("invalid request")
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, catalogerrors.NewValidationError("invalid product ID %q", raw)
	}
	return id, nil
}
