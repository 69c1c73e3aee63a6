package api

import (
	"errors"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// A 2xx mutation response must carry the entity it acted on; an
// envelope without it is a malformed server response, never a nil
// result.
var (
	errMissingTask = errors.New("malformed response: missing task")
	errMissingList = errors.New("malformed response: missing list")
)

// Wire envelopes. Entities serialize with the json tags declared on
// the domain types; mutation responses may piggyback the owning list's
// canonical copy.

type taskEnvelope struct {
	Task *domain.Task `json:"task"`
	List *domain.List `json:"list,omitempty"`
}

type tasksEnvelope struct {
	Tasks []*domain.Task `json:"tasks"`
}

type listEnvelope struct {
	List *domain.List `json:"list"`
}

type listsEnvelope struct {
	Lists []*domain.List `json:"lists"`
}

type reorderRequest struct {
	Orders []domain.OrderPair `json:"orders"`
}
