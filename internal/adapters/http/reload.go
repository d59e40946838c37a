package http

import (
	"bytes"
	"net/http"
	"sync"
)

const reloadPath = "/__reload"

const reloadScript = `<script data-storefront-reload>(function(){var es=new EventSource("` + reloadPath + `");es.addEventListener("reload",function(){location.reload()});})();</script>`

// ReloadBroker fans out reload events to connected browsers over SSE.
type ReloadBroker struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewReloadBroker() *ReloadBroker {
	return &ReloadBroker{
		subs: map[chan struct{}]struct{}{},
	}
}

func (b *ReloadBroker) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *ReloadBroker) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

func (b *ReloadBroker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *ReloadBroker) Notify() {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *ReloadBroker) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ch:
			_, _ = w.Write([]byte("event: reload\ndata: 1\n\n"))
			flusher.Flush()
		}
	}
}

// AppendScript injects the reload client before </body>. A nil broker leaves
// the document untouched.
func (b *ReloadBroker) AppendScript(doc []byte) []byte {
	if b == nil || bytes.Contains(doc, []byte("data-storefront-reload")) {
		return doc
	}

	if i := bytes.LastIndex(doc, []byte("</body>")); i >= 0 {
		out := make([]byte, 0, len(doc)+len(reloadScript))
		out = append(out, doc[:i]...)
		out = append(out, reloadScript...)
		return append(out, doc[i:]...)
	}
	return append(append([]byte(nil), doc...), reloadScript...)
}
