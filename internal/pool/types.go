package pool

// Glidein describes one supply entry advertised by a factory. Entries are
// re-fetched every iteration; the frontend never caches them across passes.
type Glidein struct {
	Name  string            `json:"name"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Monitors carries the observed job counts attached to a demand request so
// factory-side monitoring can see what the frontend was reacting to.
type Monitors struct {
	Idle    int `json:"idle"`
	Running int `json:"running"`
}

// Request is one demand record: ask the factory to keep ReqIdle pilot slots
// idle for the named glidein. ReqIdle of zero is an explicit withdrawal, not
// the absence of a request.
type Request struct {
	Name     string            `json:"name"`
	Glidein  string            `json:"glidein"`
	ReqIdle  int               `json:"req_idle"`
	Params   map[string]string `json:"params,omitempty"`
	Monitors Monitors          `json:"monitors"`
}
