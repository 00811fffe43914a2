package synthex

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// JobStatus is the lifecycle state of a server-side job.
type JobStatus string

// Job status values.
const (
	JobStatusOnHold     JobStatus = "On Hold"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusFailed     JobStatus = "Failed"
)

// Job is a data generation job as returned by [JobsService.List].
type Job struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DatapointNum int             `json:"datapoint_num"`
	OutputDomain string          `json:"output_domain"`
	Status       JobStatus       `json:"status"`
	CreatedAt    strfmt.DateTime `json:"created_at"`
}

// IsFinished returns true if the job completed or failed.
func (j *Job) IsFinished() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// ListJobsResponse is one page of jobs.
type ListJobsResponse struct {
	// Total is the number of jobs across all pages.
	Total int `json:"total"`

	Jobs []Job `json:"jobs"`
}

// Validate checks every job status against the known set.
func (m *ListJobsResponse) Validate(formats strfmt.Registry) error {
	var res []error
	for i := range m.Jobs {
		err := validate.EnumCase("jobs."+m.Jobs[i].ID+".status", "body", string(m.Jobs[i].Status),
			[]interface{}{string(JobStatusOnHold), string(JobStatusInProgress), string(JobStatusCompleted), string(JobStatusFailed)}, true)
		if err != nil {
			res = append(res, err)
		}
	}
	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// User is the authenticated user's profile.
type User struct {
	ID                     string           `json:"id"`
	FirstName              string           `json:"first_name"`
	LastName               string           `json:"last_name"`
	Email                  strfmt.Email     `json:"email"`
	DefaultPaymentMethodID *string          `json:"default_payment_method_id,omitempty"`
	PromoCreditGranted     *strfmt.DateTime `json:"promo_credit_granted"`
	IsVerified             bool             `json:"is_verified"`
}

// Validate checks the user's email format.
func (m *User) Validate(formats strfmt.Registry) error {
	if err := validate.RequiredString("id", "body", m.ID); err != nil {
		return err
	}
	if err := validate.FormatOf("email", "body", "email", m.Email.String(), formats); err != nil {
		return err
	}
	return nil
}

// FullName returns the first and last name separated by a space.
func (m *User) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Credit is a credit balance.
type Credit struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// FieldType is the declared primitive type of a schema field.
type FieldType string

// Supported field types.
const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldFloat   FieldType = "float"
)

// FieldSpec declares one output field.
type FieldSpec struct {
	Type FieldType `json:"type"`
}

// SchemaDefinition maps each output field name to its declared type. Its
// key set is the required key set of every example and generated record.
type SchemaDefinition map[string]FieldSpec

// Example is one example record.
type Example map[string]any

// JobRequest is the body of a job creation call.
type JobRequest struct {
	OutputSchema SchemaDefinition `json:"output_schema"`
	Examples     []Example        `json:"examples"`
	Requirements []string         `json:"requirements"`
	DatapointNum int              `json:"datapoint_num"`
}

// OutputFormat is the file format of a generated dataset.
type OutputFormat string

// Supported output formats.
const (
	FormatCSV OutputFormat = "csv"
)

// SupportedFormats lists every accepted [OutputFormat].
var SupportedFormats = []OutputFormat{FormatCSV}
