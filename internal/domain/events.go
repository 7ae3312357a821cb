package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCollectionLoaded     EventType = "CollectionLoaded"
	EventCollectionLoadFailed EventType = "CollectionLoadFailed"
	EventProductCreated       EventType = "ProductCreated"
	EventProductCreateFailed  EventType = "ProductCreateFailed"
	EventProductDeleted       EventType = "ProductDeleted"
	EventProductDeleteFailed  EventType = "ProductDeleteFailed"
	EventDeleteDeclined       EventType = "DeleteDeclined"
	EventValidationFailed     EventType = "ValidationFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CollectionLoadedEvent is emitted after a full list fetch replaced the collection
type CollectionLoadedEvent struct {
	Count int
}

func (e CollectionLoadedEvent) Type() EventType { return EventCollectionLoaded }

// CollectionLoadFailedEvent is emitted when a list fetch failed and stale data is kept
type CollectionLoadFailedEvent struct {
	Err error
}

func (e CollectionLoadFailedEvent) Type() EventType { return EventCollectionLoadFailed }

// ProductCreatedEvent is emitted when the store accepted a new product
type ProductCreatedEvent struct {
	Product NewProduct
}

func (e ProductCreatedEvent) Type() EventType { return EventProductCreated }

// ProductCreateFailedEvent is emitted when the store rejected or never received a create
type ProductCreateFailedEvent struct {
	Product NewProduct
	Err     error
}

func (e ProductCreateFailedEvent) Type() EventType { return EventProductCreateFailed }

// ProductDeletedEvent is emitted when the store confirmed a deletion
type ProductDeletedEvent struct {
	ID ProductID
}

func (e ProductDeletedEvent) Type() EventType { return EventProductDeleted }

// ProductDeleteFailedEvent is emitted when a confirmed deletion failed
type ProductDeleteFailedEvent struct {
	ID  ProductID
	Err error
}

func (e ProductDeleteFailedEvent) Type() EventType { return EventProductDeleteFailed }

// DeleteDeclinedEvent is emitted when the user answered no to the delete prompt
type DeleteDeclinedEvent struct {
	ID ProductID
}

func (e DeleteDeclinedEvent) Type() EventType { return EventDeleteDeclined }

// ValidationFailedEvent is emitted when a draft was rejected before any request
type ValidationFailedEvent struct {
	Field   string
	Message string
}

func (e ValidationFailedEvent) Type() EventType { return EventValidationFailed }
