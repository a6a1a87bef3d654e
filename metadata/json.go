package metadata

import "encoding/json"

// wireRecord mirrors Metadata's strict JSON shape. It exists separately
// from Metadata itself so MarshalJSON/UnmarshalJSON never recurse into
// the unexported legacy field.
type wireRecord struct {
	Log            []LogEntry `json:"log"`
	Query          string     `json:"query"`
	Status         Status     `json:"status"`
	TypeIdentifier string     `json:"type_identifier"`
	Message        string     `json:"message"`
	IsError        bool       `json:"is_error"`
	MediaType      string     `json:"media_type"`
	Filename       string     `json:"filename,omitempty"`
}

// MarshalJSON always emits the strict record, even for Metadata decoded
// from the legacy form.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		Log:            m.Log,
		Query:          m.Query,
		Status:         m.Status,
		TypeIdentifier: m.TypeIdentifier,
		Message:        m.Message,
		IsError:        m.IsError,
		MediaType:      m.MediaType,
		Filename:       m.Filename,
	})
}

// Decode tries the strict record first; on failure it falls back to
// decoding data as an arbitrary JSON object and lifting out the "query"
// and "media_type" (or legacy "mimetype") fields, per the read contract.
func Decode(data []byte) (Metadata, error) {
	var rec wireRecord
	if err := json.Unmarshal(data, &rec); err == nil && looksStrict(data) {
		return Metadata{
			Log:            rec.Log,
			Query:          rec.Query,
			Status:         rec.Status,
			TypeIdentifier: rec.TypeIdentifier,
			Message:        rec.Message,
			IsError:        rec.IsError,
			MediaType:      rec.MediaType,
			Filename:       rec.Filename,
		}, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, err
	}
	m := Metadata{Status: StatusNone, legacy: raw}
	if q, ok := raw["query"].(string); ok {
		m.Query = q
	}
	if mt, ok := raw["media_type"].(string); ok {
		m.MediaType = mt
	} else if mt, ok := raw["mimetype"].(string); ok {
		m.MediaType = mt
	}
	return m, nil
}

// looksStrict reports whether data is a genuine strict record rather than
// a permissive legacy object that merely happens to share a "query"
// field name. The legacy form is identified by either the presence of
// the legacy-only "mimetype" key or the absence of any strict-only key
// ("status", "log", "type_identifier", "is_error").
func looksStrict(data []byte) bool {
	var probe map[string]interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	if _, legacyKey := probe["mimetype"]; legacyKey {
		return false
	}
	for _, k := range []string{"status", "log", "type_identifier", "is_error"} {
		if _, ok := probe[k]; ok {
			return true
		}
	}
	return false
}
