package emit

import "encoding/json"

type jsonFormatter struct{}

type reportPayload struct {
	Namespace     string           `json:"namespace"`
	SchemaVersion uint64           `json:"schemaVersion"`
	SchemaID      uint64           `json:"schemaId"`
	Endian        string           `json:"byteOrder"`
	TypeCount     int              `json:"typeCount"`
	MessageCount  int              `json:"messageCount"`
	OptionsTreeSize int            `json:"optionsTreeSize"`
	PaddingUsed   bool             `json:"paddingUsed"`
	GroupListUsed bool             `json:"groupListUsed"`
	Entities      []EntityMetadata `json:"entities,omitempty"`
	Messages      []MessageSummary `json:"messages,omitempty"`
	Diagnostics   []string         `json:"diagnostics,omitempty"`
}

// Format renders a Report as indented JSON (§6).
func (jsonFormatter) Format(r *Report) (string, error) {
	payload := reportPayload{}
	if r != nil {
		payload = reportPayload{
			Namespace:     r.Namespace,
			SchemaVersion: r.SchemaVersion,
			SchemaID:      r.SchemaID,
			Endian:        r.Endian,
			TypeCount:     r.TypeCount,
			MessageCount:  r.MessageCount,
			OptionsTreeSize: r.OptionsTreeSize,
			PaddingUsed:   r.PaddingUsed,
			GroupListUsed: r.GroupListUsed,
			Entities:      r.Entities,
			Messages:      r.Messages,
			Diagnostics:   r.Diagnostics,
		}
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
