package livereload

import (
	"net/http"
	"strings"
)

// Endpoints served by the development server.
const (
	EventsPath = "/__sitepipe/livereload"
	ScriptPath = "/__sitepipe/livereload.js"
)

const clientScript = `(() => {
  if (window.__SITEPIPE_LR__) return;
  window.__SITEPIPE_LR__ = true;

  const notify = (message) => {
    const el = document.createElement("div");
    el.textContent = message;
    el.style.cssText = "position:fixed;top:0;right:0;z-index:2147483647;padding:12px 16px;" +
      "font:14px/1.4 sans-serif;color:#fff;background:rgba(0,0,0,.8);border-bottom-left-radius:4px";
    document.body.appendChild(el);
    setTimeout(() => el.remove(), 5000);
  };

  const inject = (paths) => {
    let swapped = 0;
    for (const link of document.querySelectorAll('link[rel="stylesheet"]')) {
      const url = new URL(link.href, location.href);
      if (url.origin !== location.origin || !paths.includes(url.pathname)) continue;
      url.searchParams.set("livereload", Date.now());
      link.href = url.toString();
      swapped++;
    }
    if (swapped === 0) location.reload();
  };

  const connect = () => {
    const es = new EventSource("EVENTS_PATH");
    es.onmessage = (e) => {
      let ev;
      try { ev = JSON.parse(e.data); } catch (_) { return; }
      switch (ev.kind) {
        case "reload": location.reload(); break;
        case "inject": inject(ev.paths || []); break;
        case "notify": notify(ev.message); break;
      }
    };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  };
  connect();
})();
`

// Script returns the browser client.
func Script() string {
	return strings.ReplaceAll(clientScript, "EVENTS_PATH", EventsPath)
}

// ScriptHandler serves the browser client.
func ScriptHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(Script()))
}
