package model

// Welcome is the session information logged once by the adapter at startup.
type Welcome struct {
	Index          int
	OS             string
	NodeVersion    string
	AdapterVersion string
	Timestamp      int64
}

// FindWelcome returns the first runtime.welcome record. A log without one is
// normal, for example when capture started after the adapter launched.
func FindWelcome(records []LogRecord) (Welcome, bool) {
	for i := range records {
		rec := &records[i]
		if rec.Tag != TagRuntimeWelcome {
			continue
		}
		w := Welcome{Index: rec.Index, Timestamp: rec.Timestamp}
		w.OS, _ = rec.MetadataString("os")
		w.NodeVersion, _ = rec.MetadataString("nodeVersion")
		w.AdapterVersion, _ = rec.MetadataString("adapterVersion")
		return w, true
	}
	return Welcome{}, false
}
