package model

import "github.com/valyala/fastjson"

// DefaultSummaryLength is the number of characters of JSON shown inline.
const DefaultSummaryLength = 200

// Summary renders the one-line "Log Entry" cell: the optional message, then
// either method(params) for requests and events, the response payload for
// responses, or the raw metadata for everything else.
func (r *LogRecord) Summary(maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSummaryLength
	}
	prefix := r.summaryPrefix()
	if !r.IsProtocol() {
		return prefix + clip(metadataJSON(r.Metadata), maxLen)
	}
	if req, ok := r.RequestParams(); ok {
		return prefix + req.Method + "(" + clip(JSON(req.Params), maxLen) + ")"
	}
	data, _ := r.ResponseData()
	return prefix + clip(JSON(data), maxLen)
}

func (r *LogRecord) summaryPrefix() string {
	if !r.HasMessage || r.Message == "" {
		return ""
	}
	if r.Metadata != nil {
		return r.Message + ": "
	}
	return r.Message
}

func metadataJSON(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
