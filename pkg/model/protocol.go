package model

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

// Family returns the protocol family of the record's tag.
func (r *LogRecord) Family() Family {
	switch r.Tag {
	case TagCDPSend, TagCDPReceive:
		return FamilyCDP
	case TagDAPSend, TagDAPReceive:
		return FamilyDAP
	}
	return FamilyNone
}

func (r *LogRecord) IsCDP() bool      { return r.Family() == FamilyCDP }
func (r *LogRecord) IsDAP() bool      { return r.Family() == FamilyDAP }
func (r *LogRecord) IsProtocol() bool { return r.Family() != FamilyNone }

func (r *LogRecord) IsSend() bool {
	return r.Tag == TagCDPSend || r.Tag == TagDAPSend
}

func (r *LogRecord) IsReceive() bool {
	return r.Tag == TagCDPReceive || r.Tag == TagDAPReceive
}

// ProtocolMessage returns metadata.message for protocol records.
func (r *LogRecord) ProtocolMessage() *fastjson.Value {
	if !r.IsProtocol() {
		return nil
	}
	return r.Field("message")
}

// MessageField returns metadata.message.<key>, or nil.
func (r *LogRecord) MessageField(key string) *fastjson.Value {
	msg := r.ProtocolMessage()
	if msg == nil {
		return nil
	}
	return msg.Get(key)
}

// DAPType returns metadata.message.type for DAP records.
func (r *LogRecord) DAPType() string {
	if !r.IsDAP() {
		return ""
	}
	t := r.MessageField("type")
	if t == nil || t.Type() != fastjson.TypeString {
		return ""
	}
	return string(t.GetStringBytes())
}

// IsRequest reports whether the record is the request side of an exchange:
// a CDP message with a method or a DAP message of type "request".
func (r *LogRecord) IsRequest() bool {
	switch r.Family() {
	case FamilyCDP:
		return Truthy(r.MessageField("method"))
	case FamilyDAP:
		return r.DAPType() == "request"
	}
	return false
}

// IsResponse reports whether the record is a CDP result or a DAP response.
func (r *LogRecord) IsResponse() bool {
	switch r.Family() {
	case FamilyCDP:
		return Truthy(r.MessageField("result"))
	case FamilyDAP:
		return r.DAPType() == "response"
	}
	return false
}

// Request is the method and parameters of a request or event.
type Request struct {
	Method string
	Params *fastjson.Value
}

// RequestParams returns the method and parameters of a request, or of a DAP
// event. ok is false for records that are neither.
func (r *LogRecord) RequestParams() (req Request, ok bool) {
	if r.IsDAP() && r.DAPType() == "event" {
		return Request{Method: stringOf(r.MessageField("event")), Params: r.MessageField("body")}, true
	}
	if !r.IsRequest() {
		return Request{}, false
	}
	if r.IsCDP() {
		return Request{Method: stringOf(r.MessageField("method")), Params: r.MessageField("params")}, true
	}
	return Request{Method: stringOf(r.MessageField("command")), Params: r.MessageField("arguments")}, true
}

// ResponseData returns the DAP body or CDP result of a response.
func (r *LogRecord) ResponseData() (*fastjson.Value, bool) {
	if !r.IsResponse() {
		return nil, false
	}
	if r.IsDAP() {
		return r.MessageField("body"), true
	}
	return r.MessageField("result"), true
}

// ReciprocalID returns a key shared by both halves of an exchange, used to
// match a hovered or inspected row with its counterpart.
func (r *LogRecord) ReciprocalID() (string, bool) {
	switch r.Family() {
	case FamilyCDP:
		id := r.MessageField("id")
		if !Present(id) {
			return "", false
		}
		return "cdp-" + id.String(), true
	case FamilyDAP:
		var seq *fastjson.Value
		switch {
		case r.IsRequest():
			seq = r.MessageField("seq")
		case r.IsResponse():
			seq = r.MessageField("request_seq")
		}
		if !Present(seq) {
			return "", false
		}
		return "dap-" + seq.String(), true
	}
	return "", false
}

// ConnectionID returns metadata.connectionId as a string.
func (r *LogRecord) ConnectionID() (string, bool) {
	v := r.Field("connectionId")
	if !Present(v) {
		return "", false
	}
	return scalarString(v), true
}

// Present reports whether v exists and is not JSON null.
func Present(v *fastjson.Value) bool {
	return v != nil && v.Type() != fastjson.TypeNull
}

// Truthy mirrors JavaScript truthiness for a JSON value.
func Truthy(v *fastjson.Value) bool {
	if v == nil {
		return false
	}
	switch v.Type() {
	case fastjson.TypeNull, fastjson.TypeFalse:
		return false
	case fastjson.TypeString:
		return len(v.GetStringBytes()) > 0
	case fastjson.TypeNumber:
		f, err := v.Float64()
		return err == nil && f != 0
	}
	return true
}

// SameScalar compares two JSON scalars. Numbers compare numerically, every
// other type by its JSON encoding. Missing or null values never compare equal.
func SameScalar(a, b *fastjson.Value) bool {
	if !Present(a) || !Present(b) {
		return false
	}
	if a.Type() == fastjson.TypeNumber && b.Type() == fastjson.TypeNumber {
		fa, errA := a.Float64()
		fb, errB := b.Float64()
		return errA == nil && errB == nil && fa == fb
	}
	return a.Type() == b.Type() && a.String() == b.String()
}

func stringOf(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	return scalarString(v)
}

func scalarString(v *fastjson.Value) string {
	if v.Type() == fastjson.TypeString {
		return string(v.GetStringBytes())
	}
	return strings.TrimSpace(v.String())
}

// JSON renders v compactly; a missing value renders as "undefined".
func JSON(v *fastjson.Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}

func (r *LogRecord) String() string {
	return fmt.Sprintf("#%d %s %s", r.Index, r.Level, r.Tag)
}
