package mqtt

import (
	"context"
	"encoding/json"
	"time"

	qtt "github.com/eclipse/paho.mqtt.golang"
	g "github.com/ptzrig/ptz-console/globals"
	"github.com/ptzrig/ptz-console/models"
	"github.com/ptzrig/ptz-console/services"
)

const protocolVersion = 4 // corresponds to MQTT 3.1.1

// statusListener - optional subscription to the rig's MQTT status feed.
// Camera status events trigger a roster refresh so the console converges on
// rig-side changes without waiting for the scheduled poll.
type statusListener struct {
	store    *services.CameraStore
	notifier *services.NotificationManager
	client   *qtt.Client
	stop     chan bool
}

func NewStatusListener(store *services.CameraStore, notifier *services.NotificationManager) *statusListener {
	return &statusListener{
		store:    store,
		notifier: notifier,
		stop:     make(chan bool, 1),
	}
}

func (sl *statusListener) onConnect(client qtt.Client) {
	g.Log.Info("MQTT client connected", client.IsConnected())
}

func (sl *statusListener) onConnectionLost(client qtt.Client, err error) {
	g.Log.Error("MQTT connection lost", err)
}

func (sl *statusListener) onMessage(client qtt.Client, msg qtt.Message) {
	var status models.RigStatusMessage
	err := json.Unmarshal(msg.Payload(), &status)
	if err != nil {
		g.Log.Error("failed to unmarshal rig status payload", err, string(msg.Payload()))
		return
	}

	switch status.Type {
	case models.RigEventCameraStatus:
		g.Log.Info("camera status changed on the rig: ", status.Nickname, status.Status)
		go sl.store.RefreshRoster(context.Background())
		if status.Status == models.CameraStatusOffline {
			sl.notifier.Warning("Camera " + status.Nickname + " went offline")
		}
	case models.RigEventCompositor:
		g.Log.Info("compositor status event: ", status.Status, status.Message)
	default:
		g.Log.Warn("unrecognized rig status event: ", status.Type)
	}
}

// Start connects to the broker when one is configured. Without a broker URL
// the listener stays off and the scheduled roster refresh is the only source
// of rig-side changes.
func (sl *statusListener) Start(conf *g.MqttSubconfig) error {
	if conf == nil || conf.BrokerURL == "" {
		g.Log.Info("no MQTT broker configured, rig status feed disabled")
		return nil
	}

	opts := qtt.NewClientOptions()
	opts.AddBroker(conf.BrokerURL)
	opts.SetClientID(conf.ClientID)
	if conf.Username != "" {
		opts.SetUsername(conf.Username)
		opts.SetPassword(conf.Password)
	}
	opts.SetProtocolVersion(protocolVersion)
	opts.SetOnConnectHandler(sl.onConnect)
	opts.SetDefaultPublishHandler(sl.onMessage)
	opts.SetConnectionLostHandler(sl.onConnectionLost)
	opts.SetCleanSession(false)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 15)

	client := qtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		g.Log.Error("failed to connect to the rig MQTT broker", token.Error())
		return token.Error()
	}
	sl.client = &client

	if token := client.Subscribe(conf.StatusTopic, 1, sl.onMessage); token.Wait() && token.Error() != nil {
		g.Log.Error("failed to subscribe to rig status topic", conf.StatusTopic, token.Error())
		return token.Error()
	}
	g.Log.Info("subscribed to rig status topic ", conf.StatusTopic)
	return nil
}

func (sl *statusListener) Stop() error {
	g.Log.Info("mqtt disconnect")
	if sl.client != nil {
		(*sl.client).Disconnect(20)
	}
	select {
	case sl.stop <- true:
	default:
	}
	return nil
}
