package whatsapp_test

import (
	"encoding/json"
	"testing"

	"github.com/amminlb/corporateai/internal/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "102030",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"messages": [{
					"from": "96170000001",
					"id": "wamid.abc",
					"timestamp": "1693526400",
					"type": "text",
					"text": {"body": "how much is car insurance?"}
				}]
			}
		}]
	}]
}`

func TestPayload_InboundMessages(t *testing.T) {
	var payload whatsapp.Payload
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &payload))

	messages := payload.InboundMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "96170000001", messages[0].From)
	assert.Equal(t, whatsapp.TypeText, messages[0].Type)
	assert.Equal(t, "how much is car insurance?", messages[0].Body())
}

func TestPayload_InboundMessages_ForeignObject(t *testing.T) {
	payload := whatsapp.Payload{Object: "instagram", Entry: []whatsapp.Entry{{
		Changes: []whatsapp.Change{{Field: "messages", Value: whatsapp.Value{
			Messages: []whatsapp.Message{{From: "1", Type: "text"}},
		}}},
	}}}
	assert.Empty(t, payload.InboundMessages())
}

func TestPayload_InboundMessages_NonMessageChanges(t *testing.T) {
	payload := whatsapp.Payload{Object: whatsapp.ObjectBusinessAccount, Entry: []whatsapp.Entry{{
		Changes: []whatsapp.Change{{Field: "statuses"}},
	}}}
	assert.Empty(t, payload.InboundMessages())
}

func TestMessage_Body_NonText(t *testing.T) {
	msg := whatsapp.Message{From: "96170000001", Type: "image"}
	assert.Empty(t, msg.Body())
}
