package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/desk-bot/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"orUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if not .Config.WSBroker}}<meta http-equiv="refresh" content="2">{{end}}
<title>Desk Bot</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.ok { color: green; font-weight: bold; }
.idle { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.cmds a { display: inline-block; margin: 2px 6px 2px 0; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Desk Bot{{if .Config.WSBroker}}<span id="live-dot" class="live-dot pending" title="connecting"></span>{{end}}</h1>

<h2>Face</h2>
<table>
<tr><th>Expression</th><td id="expression">{{orUnknown .Expression}}</td></tr>
<tr><th>Blink Phase</th><td>{{orUnknown .BlinkPhase}}</td></tr>
<tr><th>Text Overlay</th><td>{{if .OverlayActive}}<span class="ok">{{.OverlayText}}</span>{{else}}<span class="idle">none</span>{{end}}</td></tr>
</table>

<h2>Head</h2>
<table>
<tr><th>Angle</th><td><span id="head-angle">{{.HeadAngle}}</span>&deg;</td></tr>
<tr><th>Moving</th><td>{{if .HeadBusy}}<span class="ok">yes</span>{{else}}<span class="idle">no</span>{{end}}</td></tr>
</table>

<h2>Quick Commands</h2>
<p class="cmds">
<a href="/face?state=neutral">neutral</a>
<a href="/face?state=happy">happy</a>
<a href="/face?state=sad">sad</a>
<a href="/face?state=angry">angry</a>
<a href="/face?state=grinning">grinning</a>
<a href="/face?state=scared">scared</a>
<br>
<a href="/head?position=left">left</a>
<a href="/head?position=center">center</a>
<a href="/head?position=right">right</a>
<a href="/head?position=shake">shake</a>
</p>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Command Counts</h2>
<table>
<tr><th>Face set</th><td>{{.Counts.FaceSet}}</td></tr>
<tr><th>Text shown</th><td>{{.Counts.TextShown}}</td></tr>
<tr><th>Head moves</th><td>{{.Counts.HeadMoves}}</td></tr>
<tr><th>Shakes</th><td>{{.Counts.Shakes}}</td></tr>
<tr><th>Blinks</th><td>{{.Counts.Blinks}}</td></tr>
</table>

<h2>Daemon</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02 15:04:05 UTC"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{.Config.HeartbeatMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
{{if .Config.WSBroker}}
<script src="/mqtt.min.js"></script>
<script>
(function() {
  var broker = "{{.Config.WSBroker}}";
  var topic = "home/deskbot/events";
  var dot = document.getElementById("live-dot");
  var exprEl = document.getElementById("expression");
  var angleEl = document.getElementById("head-angle");

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  var client = mqtt.connect(broker, { reconnectPeriod: 5000 });

  client.on("connect", function() {
    setDot("ok", "live");
    client.subscribe(topic);
  });

  client.on("reconnect", function() {
    setDot("pending", "reconnecting");
  });

  client.on("offline", function() {
    setDot("err", "offline");
  });

  client.on("error", function() {
    setDot("err", "error");
  });

  client.on("message", function(t, payload) {
    try {
      var msg = JSON.parse(payload.toString());
      if (msg.deskbot) {
        exprEl.textContent = msg.deskbot.face.expression;
        angleEl.textContent = msg.deskbot.head.angle;
      }
    } catch (e) {}
  });
})();
</script>
{{end}}
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
