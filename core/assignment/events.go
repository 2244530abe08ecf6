package assignment

// Event is emitted after every successful lifecycle mutation.
type Event interface {
	AssignmentID() int
}

type (
	Created struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	Submitted struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	Graded struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Grade int    `json:"grade"`
	}
)

func (e Created) AssignmentID() int   { return e.ID }
func (e Submitted) AssignmentID() int { return e.ID }
func (e Graded) AssignmentID() int    { return e.ID }

// Publisher receives the events of a Service.
type Publisher interface {
	Publish(evt Event)
}

// PublisherFunc adapts a function to a Publisher.
type PublisherFunc func(evt Event)

func (f PublisherFunc) Publish(evt Event) { f(evt) }
