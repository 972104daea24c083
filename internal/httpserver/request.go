package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"rawg-catalog-service/api/dto"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// в сообщениях об ошибках - имена query-параметров
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := f.Tag.Get("query"); name != "" {
				return name
			}
			return f.Name
		})
	})
	return validate
}

// validationMessage joins field errors into one line, e.g.
// "gameId must be greater than 0; ordering must be one of: ...".
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

type searchRequest struct {
	Search     string `query:"search" validate:"max=200"`
	Platform   string `query:"platform" validate:"max=64"`
	Developer  string `query:"developer" validate:"max=64"`
	Publisher  string `query:"publisher" validate:"max=64"`
	Genre      string `query:"genre" validate:"max=64"`
	Metacritic string `query:"metacritic" validate:"max=16"`
	Ordering   string `query:"ordering" validate:"omitempty,oneof=name -name released -released added -added created -created updated -updated rating -rating metacritic -metacritic"`
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
}

func (s searchRequest) filter() dto.FilterQuery {
	return dto.NewFilterQuery(s.Search, s.Platform, s.Developer, s.Publisher, s.Genre, s.Metacritic, s.Ordering, s.Page, s.PageSize)
}

func parseSearch(r *http.Request) searchRequest {
	q := r.URL.Query()
	return searchRequest{
		Search:     strings.TrimSpace(q.Get("search")),
		Platform:   strings.TrimSpace(q.Get("platform")),
		Developer:  strings.TrimSpace(q.Get("developer")),
		Publisher:  strings.TrimSpace(q.Get("publisher")),
		Genre:      strings.TrimSpace(q.Get("genre")),
		Metacritic: strings.TrimSpace(q.Get("metacritic")),
		Ordering:   strings.TrimSpace(q.Get("ordering")),
		Page:       intQuery(r, "page", dto.DefaultPage),
		PageSize:   intQuery(r, "pageSize", dto.DefaultPageSize),
	}
}

type publisherRequest struct {
	PublisherIDs string `query:"publisherIds" validate:"required,max=200"`
	ExcludeID    int    `query:"excludeId" validate:"gte=0"`
}

type gameRequest struct {
	ID int `query:"gameId" validate:"gt=0"`
}

// intQuery is lenient: a blank or malformed value yields def, paging is
// clamped later anyway.
func intQuery(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// strictInt parses a required id; malformed input maps to 0 so that the
// validator rejects it.
func strictInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
