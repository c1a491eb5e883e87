// Command desk-bot renders animated facial expressions on an OLED and drives
// the head servo, controlled over HTTP and MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/desk-bot/internal/anim"
	"github.com/sweeney/desk-bot/internal/command"
	"github.com/sweeney/desk-bot/internal/display"
	"github.com/sweeney/desk-bot/internal/face"
	"github.com/sweeney/desk-bot/internal/motion"
	"github.com/sweeney/desk-bot/internal/mqtt"
	"github.com/sweeney/desk-bot/internal/servo"
	"github.com/sweeney/desk-bot/internal/status"
	"github.com/sweeney/desk-bot/internal/web"
)

// commandQueueSize bounds how many validated commands can wait for the loop.
// The loop services one per tick, so a short burst queues rather than drops.
const commandQueueSize = 16

func main() {
	tick := flag.Duration("tick", 20*time.Millisecond, "Control loop tick interval")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP command/status address (empty to disable)")
	i2cBus := flag.String("i2c", "", "I2C bus for the OLED (empty = first available)")
	servoChip := flag.String("servo-chip", "gpiochip0", "GPIO chip for the servo line")
	servoPin := flag.Int("servo-pin", servo.DefaultPin, "BCM pin number for the servo signal")
	demo := flag.String("demo", "", "Render the named expression once and exit")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	ws := resolveWSBroker(*wsBroker, *broker)
	if err := run(*tick, *broker, *heartbeat, *httpAddr, *i2cBus, *servoChip, *servoPin, *demo, ws); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(tick time.Duration, broker string, heartbeat time.Duration, httpAddr, i2cBus, servoChip string, servoPin int, demo, wsBroker string) error {
	// Initialize hardware. Rendering is the system's sole purpose, so a
	// missing display or servo halts startup rather than degrading.
	disp, err := display.NewReal(i2cBus)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()

	// Demo mode: one-shot render for bring-up checks.
	if demo != "" {
		cmd, err := command.ParseFace(demo)
		if err != nil {
			return fmt.Errorf("demo: %w", err)
		}
		if cmd.Kind != command.SetFace {
			return fmt.Errorf("demo: want an expression name, got %q", demo)
		}
		return face.Render(disp, cmd.Expression, face.Open)
	}

	srv, err := servo.NewRealWriter(servoChip, servoPin)
	if err != nil {
		return fmt.Errorf("init servo: %w", err)
	}
	defer srv.Close()

	// MQTT is a remote collaborator, not hardware: run without it if the
	// broker is unreachable at startup.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	cmds := make(chan command.Command, commandQueueSize)

	pub, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		log.Printf("mqtt unavailable: %v; continuing without broker", err)
	} else {
		publisher = pub
		mqttStatus = pub
		defer pub.Close()
		if err := pub.SubscribeCommands(func(topic, payload string) {
			enqueueMQTTCommand(topic, payload, cmds)
		}); err != nil {
			log.Printf("mqtt subscribe: %v", err)
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      tick.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		WSBroker:    wsBroker,
		HTTPAddr:    httpAddr,
		I2CBus:      i2cBus,
		ServoChip:   servoChip,
		ServoPin:    servoPin,
	})

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP command/status server
	if httpAddr != "" {
		webSrv := web.New(httpAddr, tracker, cmds)
		go func() {
			if err := webSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer webSrv.Shutdown(context.Background())
		log.Printf("http server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v broker=%s heartbeat=%v", tick, broker, heartbeat)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(disp, srv, publisher, mqttStatus, tracker, heartbeat, time.Now, ticker.C, cmds, sigCh)
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; "off"
// disables the live page.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}

// enqueueMQTTCommand validates a command arriving over MQTT and queues it for
// the control loop. Invalid payloads are logged and dropped; there is no
// caller to reject to.
func enqueueMQTTCommand(topic, payload string, cmds chan<- command.Command) {
	var cmd command.Command
	var err error
	switch topic {
	case mqtt.TopicFaceSet:
		cmd, err = command.ParseFace(payload)
	case mqtt.TopicHeadSet:
		cmd, err = command.ParseHead(payload)
	default:
		log.Printf("mqtt: unexpected command topic %s", topic)
		return
	}
	if err != nil {
		log.Printf("mqtt: rejected %s %q: %v", topic, payload, err)
		return
	}
	select {
	case cmds <- cmd:
	default:
		log.Printf("mqtt: command queue full, dropping %s %q", topic, payload)
	}
}

// loopState bundles the engine singletons owned by runLoop.
type loopState struct {
	sched  *anim.Scheduler
	head   *motion.Controller
	counts status.Counts
}

func runLoop(disp display.Driver, srv servo.Writer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, cmds <-chan command.Command, sig <-chan os.Signal) error {
	startTime := now()
	st := &loopState{
		sched: anim.New(startTime),
		head:  motion.New(servo.CenterAngle),
	}
	lastHeartbeat := startTime

	// Initial state: neutral face, open eyes, centered head.
	renderView(disp, st.sched.View())
	if err := srv.Write(servo.CenterAngle); err != nil {
		log.Printf("servo write error: %v", err)
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					updateTracker(tracker, st, mqttStatus)
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			t := now()

			// Service at most one pending command per tick.
			select {
			case cmd := <-cmds:
				applyCommand(disp, st, publisher, cmd, t)
			default:
			}

			// Evaluate blink/overlay timers.
			prevPhase := st.sched.Phase()
			redraw, events := st.sched.Advance(t)
			if redraw {
				if prevPhase == face.Open && st.sched.Phase() == face.Closed {
					st.counts.Blinks++
				}
				renderView(disp, st.sched.View())
			}
			for _, ev := range events {
				log.Printf("event: %s (expression=%s)", ev.Type, ev.Expression)
				publishEvent(publisher, st, mqtt.Event{
					Timestamp:  ev.Timestamp,
					Type:       string(ev.Type),
					Expression: ev.Expression.String(),
					Detail:     ev.Text,
				})
			}

			// Write due motion steps to the servo.
			for _, angle := range st.head.Advance(t) {
				if err := srv.Write(angle); err != nil {
					log.Printf("servo write error: %v", err)
					// Don't crash on a write failure
				}
			}

			// Check for heartbeat
			if publisher != nil && heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				log.Printf("heartbeat: uptime=%v face_set=%d head_moves=%d blinks=%d",
					t.Sub(startTime), st.counts.FaceSet, st.counts.HeadMoves, st.counts.Blinks)

				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					updateTracker(tracker, st, mqttStatus)
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				updateTracker(tracker, st, mqttStatus)
			}
		}
	}
}

// applyCommand mutates the scheduler or motion controller for one validated
// command and triggers the immediate render/write the transition rules
// require.
func applyCommand(disp display.Driver, st *loopState, publisher mqtt.Publisher, cmd command.Command, t time.Time) {
	switch cmd.Kind {
	case command.SetFace:
		ev := st.sched.SetExpression(cmd.Expression, t)
		st.counts.FaceSet++
		renderView(disp, st.sched.View())
		log.Printf("command: face %s", cmd.Expression)
		publishEvent(publisher, st, mqtt.Event{
			Timestamp:  ev.Timestamp,
			Type:       string(ev.Type),
			Expression: ev.Expression.String(),
		})

	case command.ShowText:
		ev := st.sched.ShowText(cmd.Text, t)
		st.counts.TextShown++
		renderView(disp, st.sched.View())
		log.Printf("command: text %q", cmd.Text)
		publishEvent(publisher, st, mqtt.Event{
			Timestamp:  ev.Timestamp,
			Type:       string(ev.Type),
			Expression: ev.Expression.String(),
			Detail:     ev.Text,
		})

	case command.HeadLeft, command.HeadRight, command.HeadCenter, command.HeadAngle:
		switch cmd.Kind {
		case command.HeadLeft:
			st.head.MoveLeft(t)
		case command.HeadRight:
			st.head.MoveRight(t)
		case command.HeadCenter:
			st.head.MoveCenter(t)
		case command.HeadAngle:
			st.head.MoveTo(cmd.Angle, t)
		}
		st.counts.HeadMoves++
		log.Printf("command: head to %d", st.head.Target())
		publishEvent(publisher, st, mqtt.Event{
			Timestamp:  t,
			Type:       "HEAD_MOVE",
			Expression: st.sched.Expression().String(),
			Detail:     fmt.Sprintf("target=%d", st.head.Target()),
		})

	case command.HeadShake:
		st.head.Shake(t)
		st.counts.Shakes++
		log.Printf("command: head shake")
		publishEvent(publisher, st, mqtt.Event{
			Timestamp:  t,
			Type:       "HEAD_SHAKE",
			Expression: st.sched.Expression().String(),
		})
	}
}

// renderView draws whatever the scheduler says should be on screen.
func renderView(disp display.Driver, v anim.View) {
	var err error
	if v.Mode == anim.ShowingText {
		err = face.RenderText(disp, v.Text)
	} else {
		err = face.Render(disp, v.Expression, v.Phase)
	}
	if err != nil {
		log.Printf("render error: %v", err)
	}
}

func publishEvent(publisher mqtt.Publisher, st *loopState, ev mqtt.Event) {
	if publisher == nil {
		return
	}
	ev.Angle = st.head.Angle()
	if err := publisher.Publish(ev); err != nil {
		log.Printf("publish error: %v", err)
	}
}

func updateTracker(tracker *status.Tracker, st *loopState, mqttStatus mqtt.ConnectionStatus) {
	v := st.sched.View()
	overlayText := ""
	if v.Mode == anim.ShowingText {
		overlayText = v.Text
	}
	tracker.UpdateFace(v.Expression.String(), v.Phase.String(), st.sched.OverlayActive(), overlayText)
	tracker.UpdateHead(st.head.Angle(), st.head.Busy())
	tracker.SetCounts(st.counts)
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}
}
