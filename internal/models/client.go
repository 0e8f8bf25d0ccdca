package models

// ClientRecord is the persisted client entity. Field names in the stored
// JSON match the browser-era collection format so existing slots stay
// readable.
type ClientRecord struct {
	ID        string   `json:"id"`
	FullName  string   `json:"fullName"`
	Age       string   `json:"age"`
	Gender    string   `json:"gender"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Goal      string   `json:"goal"`
	StartDate string   `json:"startDate"`
	History   []string `json:"history"`
}

// Clone returns a deep copy of the record.
func (r *ClientRecord) Clone() *ClientRecord {
	cp := *r
	if r.History != nil {
		cp.History = make([]string, len(r.History))
		copy(cp.History, r.History)
	}
	return &cp
}

// ClientFields carries the editable field set collected by a form.
// ID and History are never part of it.
type ClientFields struct {
	FullName  string
	Age       string
	Gender    string
	Email     string
	Phone     string
	Goal      string
	StartDate string
}

// ClientUpdate is a partial edit of a record. Nil fields are left
// untouched; ID and History cannot be changed through an update.
type ClientUpdate struct {
	FullName  *string
	Age       *string
	Gender    *string
	Email     *string
	Phone     *string
	Goal      *string
	StartDate *string
}

// Apply merges the update over the record in place.
func (u ClientUpdate) Apply(r *ClientRecord) {
	if u.FullName != nil {
		r.FullName = *u.FullName
	}
	if u.Age != nil {
		r.Age = *u.Age
	}
	if u.Gender != nil {
		r.Gender = *u.Gender
	}
	if u.Email != nil {
		r.Email = *u.Email
	}
	if u.Phone != nil {
		r.Phone = *u.Phone
	}
	if u.Goal != nil {
		r.Goal = *u.Goal
	}
	if u.StartDate != nil {
		r.StartDate = *u.StartDate
	}
}

// UpdateFrom builds an update that replaces the standard edit-form fields.
// Age and gender are not on the edit form and stay untouched.
func UpdateFrom(f ClientFields) ClientUpdate {
	return ClientUpdate{
		FullName:  &f.FullName,
		Email:     &f.Email,
		Phone:     &f.Phone,
		Goal:      &f.Goal,
		StartDate: &f.StartDate,
	}
}

// NewRecord constructs a record from validated fields with an empty
// training history.
func NewRecord(id string, f ClientFields) *ClientRecord {
	return &ClientRecord{
		ID:        id,
		FullName:  f.FullName,
		Age:       f.Age,
		Gender:    f.Gender,
		Email:     f.Email,
		Phone:     f.Phone,
		Goal:      f.Goal,
		StartDate: f.StartDate,
		History:   []string{},
	}
}
