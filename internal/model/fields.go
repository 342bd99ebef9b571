package model

// Field 是 Event 對外（JSON）使用的欄位名稱
type Field string

const (
	FieldTitle       Field = "title"
	FieldSlug        Field = "slug"
	FieldDescription Field = "description"
	FieldOverview    Field = "overview"
	FieldImage       Field = "image"
	FieldVenue       Field = "venue"
	FieldLocation    Field = "location"
	FieldDate        Field = "date"
	FieldTime        Field = "time"
	FieldMode        Field = "mode"
	FieldAudience    Field = "audience"
	FieldAgenda      Field = "agenda"
	FieldOrganizer   Field = "organizer"
	FieldTags        Field = "tags"
)

// Fields 是被修改過的欄位集合
type Fields map[Field]struct{}

func NewFields(fields ...Field) Fields {
	set := make(Fields, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// AllFields 用於新建立的紀錄：所有欄位都視為已修改
func AllFields() Fields {
	return NewFields(
		FieldTitle, FieldDescription, FieldOverview, FieldImage, FieldVenue,
		FieldLocation, FieldDate, FieldTime, FieldMode, FieldAudience,
		FieldAgenda, FieldOrganizer, FieldTags,
	)
}

func (f Fields) Has(field Field) bool {
	_, ok := f[field]
	return ok
}

func (f Fields) Add(field Field) {
	f[field] = struct{}{}
}

// ChangedFields 回傳有提供值的欄位
func (p UpdateEventParams) ChangedFields() Fields {
	set := NewFields()
	optional := map[Field]*string{
		FieldTitle:       p.Title,
		FieldDescription: p.Description,
		FieldOverview:    p.Overview,
		FieldImage:       p.Image,
		FieldVenue:       p.Venue,
		FieldLocation:    p.Location,
		FieldDate:        p.Date,
		FieldTime:        p.Time,
		FieldMode:        p.Mode,
		FieldAudience:    p.Audience,
		FieldOrganizer:   p.Organizer,
	}
	for field, v := range optional {
		if v != nil {
			set.Add(field)
		}
	}
	if p.Agenda != nil {
		set.Add(FieldAgenda)
	}
	if p.Tags != nil {
		set.Add(FieldTags)
	}
	return set
}

// Apply 將有提供的欄位寫入 event
func (p UpdateEventParams) Apply(event *Event) {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&event.Title, p.Title)
	assign(&event.Description, p.Description)
	assign(&event.Overview, p.Overview)
	assign(&event.Image, p.Image)
	assign(&event.Venue, p.Venue)
	assign(&event.Location, p.Location)
	assign(&event.Date, p.Date)
	assign(&event.Time, p.Time)
	assign(&event.Mode, p.Mode)
	assign(&event.Audience, p.Audience)
	assign(&event.Organizer, p.Organizer)
	if p.Agenda != nil {
		event.Agenda = p.Agenda
	}
	if p.Tags != nil {
		event.Tags = p.Tags
	}
}
