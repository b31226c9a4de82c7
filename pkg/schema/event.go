package schema

import "time"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields" : [
		{"name": "event_id", "type": "string"},
		{"name": "type", "type": "string"},
		{"name": "subject", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "occurred_at", "type": {
			"type": "long", "logicalType": "timestamp-millis"
		}}
	]
}`

// ClientEventV1 is the wire form of a catalog usage event.
// Subject carries the product id for product_view events and Query
// carries the search text for search events.
type ClientEventV1 struct {
	EventID    string    `avro:"event_id"`
	Type       string    `avro:"type"`
	Subject    string    `avro:"subject"`
	Query      string    `avro:"query"`
	OccurredAt time.Time `avro:"occurred_at"`
}
