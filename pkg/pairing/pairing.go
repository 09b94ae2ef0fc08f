// Package pairing matches a protocol request with its response, or an event
// with its acknowledgement, so the inspector can show both halves together.
package pairing

import "github.com/Slach/debug-log-viewer/pkg/model"

// IsReciprocalPair reports whether a and b are the two halves of one CDP or
// DAP exchange. The arguments may be given in either order.
func IsReciprocalPair(a, b *model.LogRecord) bool {
	if a == nil || b == nil {
		return false
	}
	family := a.Family()
	if family == model.FamilyNone || family != b.Family() {
		return false
	}

	send, receive := a, b
	if send.IsReceive() {
		send, receive = receive, send
	}
	if !send.IsSend() || !receive.IsReceive() {
		return false
	}

	switch family {
	case model.FamilyDAP:
		return dapPair(send, receive)
	case model.FamilyCDP:
		return cdpPair(send, receive)
	}
	return false
}

// dapPair requires different message types and equal seq values, so a
// request echoed in the other direction is not mistaken for its response.
// A response also pairs with the request its request_seq names, since
// adapters number responses from their own sequence.
func dapPair(send, receive *model.LogRecord) bool {
	typeSend, typeReceive := send.DAPType(), receive.DAPType()
	if typeSend == "" || typeReceive == "" || typeSend == typeReceive {
		return false
	}
	if model.SameScalar(send.MessageField("seq"), receive.MessageField("seq")) {
		return true
	}
	return answers(send, receive) || answers(receive, send)
}

// answers reports whether response carries request_seq equal to request's seq.
func answers(response, request *model.LogRecord) bool {
	if response.DAPType() != "response" {
		return false
	}
	rs := response.MessageField("request_seq")
	return model.Present(rs) && model.SameScalar(rs, request.MessageField("seq"))
}

// cdpPair requires equal ids and a method on exactly one side.
func cdpPair(send, receive *model.LogRecord) bool {
	if !model.SameScalar(send.MessageField("id"), receive.MessageField("id")) {
		return false
	}
	return model.Truthy(send.MessageField("method")) != model.Truthy(receive.MessageField("method"))
}

// FindCounterpart returns the record in rows that pairs with row, preferring
// the one closest to it in the file. rows is the full unfiltered list.
func FindCounterpart(row *model.LogRecord, rows []model.LogRecord) (*model.LogRecord, bool) {
	if row == nil || !row.IsProtocol() {
		return nil, false
	}
	var best *model.LogRecord
	bestDistance := -1
	for i := range rows {
		candidate := &rows[i]
		if candidate.Index == row.Index || !IsReciprocalPair(row, candidate) {
			continue
		}
		d := candidate.Index - row.Index
		if d < 0 {
			d = -d
		}
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best, best != nil
}
