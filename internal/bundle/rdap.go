package bundle

import "encoding/json"

// RDAPScan is the /rdap/ payload. The provider sometimes wraps the
// object in a one-element list depending on its code path; decoding
// normalizes that by taking index 0.
type RDAPScan struct {
	Host        string     `json:"host"`
	Nameservers []string   `json:"nameserver"`
	Domain      RDAPDomain `json:"domain"`

	// Registrar is filled by the whois fallback path, which has the
	// name directly instead of buried in a jCard.
	Registrar string `json:"-"`
}

type RDAPDomain struct {
	Events   []RDAPEvent  `json:"events"`
	Status   []string     `json:"status"`
	Entities []RDAPEntity `json:"entities"`
}

type RDAPEvent struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

// RDAPEntity holds a jCard. The vcardArray shape is
// ["vcard", [[name, params, type, value], ...]]; only the name and
// value positions are read.
type RDAPEntity struct {
	VCardArray []json.RawMessage `json:"vcardArray"`
}

func (s *RDAPScan) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			*s = RDAPScan{}
			return nil
		}
		data = list[0]
	}
	type plain RDAPScan
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = RDAPScan(p)
	return nil
}

// RegistrationDate returns the date of the registration event, or ""
// when the event list has none.
func (s *RDAPScan) RegistrationDate() string {
	for _, ev := range s.Domain.Events {
		if ev.Action == "registration" {
			return ev.Date
		}
	}
	return ""
}

// RegistrarName extracts the registrant name from the first entity's
// jCard, preferring the org field over fn.
func (s *RDAPScan) RegistrarName() string {
	if s.Registrar != "" {
		return s.Registrar
	}
	if len(s.Domain.Entities) == 0 {
		return ""
	}
	vcard := s.Domain.Entities[0].VCardArray
	if len(vcard) < 2 {
		return ""
	}
	var entries [][]json.RawMessage
	if err := json.Unmarshal(vcard[1], &entries); err != nil {
		return ""
	}
	var org, fn string
	for _, entry := range entries {
		if len(entry) < 4 {
			continue
		}
		var field, value string
		if json.Unmarshal(entry[0], &field) != nil || json.Unmarshal(entry[3], &value) != nil {
			continue
		}
		switch field {
		case "org":
			org = value
		case "fn":
			fn = value
		}
	}
	if org != "" {
		return org
	}
	return fn
}
