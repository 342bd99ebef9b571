// Package normalize 在寫入資料庫前正規化並驗證 Event。
//
// Pipeline 不做任何 I/O，也不寫 log；錯誤以 *apperrors.ValidationError 回傳，
// 由呼叫端決定如何呈現。Pipeline 沒有可變狀態，可在多個 goroutine 間共用。
package normalize

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go-gin-event-hub/internal/model"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

type Pipeline struct {
	validate *validator.Validate
}

func NewPipeline() *Pipeline {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 錯誤以 JSON 欄位名稱回報
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Pipeline{validate: v}
}

// Normalize 只處理 changed 內的欄位：修剪字串、title 修改時重新產生 slug、
// 轉換 date 與 time。任一欄位失敗時回傳 *apperrors.ValidationError，且 event 不會被修改。
func (p *Pipeline) Normalize(event *model.Event, changed model.Fields) error {
	next := *event
	trimFields(&next, changed)

	verr := apperrors.NewValidationError()

	if changed.Has(model.FieldTitle) {
		next.Slug = Slugify(next.Title)
		if next.Title != "" && !ValidSlug(next.Slug) {
			verr.Add(&apperrors.FieldError{
				Field:   string(model.FieldSlug),
				Message: "Title must contain at least one letter or digit",
				Err:     apperrors.ErrInvalidSlug,
			})
		}
	}

	if changed.Has(model.FieldDate) && next.Date != "" {
		date, err := CanonicalDate(next.Date)
		if err != nil {
			verr.Add(&apperrors.FieldError{Field: string(model.FieldDate), Message: err.Error(), Err: err})
		} else {
			next.Date = date
		}
	}

	if changed.Has(model.FieldTime) && next.Time != "" {
		clock, err := CanonicalTime(next.Time)
		if err != nil {
			verr.Add(&apperrors.FieldError{Field: string(model.FieldTime), Message: err.Error(), Err: err})
		} else {
			next.Time = clock
		}
	}

	if !verr.Empty() {
		return verr
	}
	*event = next
	return nil
}

// Validate 檢查必填欄位與 agenda、tags 至少一個項目
func (p *Pipeline) Validate(event *model.Event) error {
	err := p.validate.Struct(event)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(&apperrors.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
			Err:     apperrors.ErrRequiredField,
		})
	}
	return verr
}

// Prepare 依序執行 Normalize 與 Validate
func (p *Pipeline) Prepare(event *model.Event, changed model.Fields) error {
	if err := p.Normalize(event, changed); err != nil {
		return err
	}
	return p.Validate(event)
}

func messageFor(field, tag string) string {
	label := strings.ToUpper(field[:1]) + field[1:]
	switch tag {
	case "min":
		return fmt.Sprintf("%s must contain at least one item", label)
	case "required":
		if field == string(model.FieldTags) {
			return "Tags are required"
		}
		return fmt.Sprintf("%s is required", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func trimFields(event *model.Event, changed model.Fields) {
	targets := map[model.Field]*string{
		model.FieldTitle:       &event.Title,
		model.FieldDescription: &event.Description,
		model.FieldOverview:    &event.Overview,
		model.FieldImage:       &event.Image,
		model.FieldVenue:       &event.Venue,
		model.FieldLocation:    &event.Location,
		model.FieldDate:        &event.Date,
		model.FieldTime:        &event.Time,
		model.FieldMode:        &event.Mode,
		model.FieldAudience:    &event.Audience,
		model.FieldOrganizer:   &event.Organizer,
	}
	for field, ptr := range targets {
		if changed.Has(field) {
			*ptr = strings.TrimSpace(*ptr)
		}
	}
}
