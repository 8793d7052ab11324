package mesh

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ReportPublisher pushes ColorInfo reports to MQTT so external consumers
// (exporters, dashboards) can pick up analysis results. One publisher can
// track reports for many meshes.
type ReportPublisher struct {
	client  mqtt.Client
	prefix  string
	qos     byte
	retain  bool
	reports map[string]ColorInfo
	mu      sync.RWMutex
}

// NewReportPublisher creates a publisher over an existing MQTT client. An
// empty prefix defaults to "meshcolor". A nil client disables publishing;
// PublishReport then returns an error instead of panicking.
func NewReportPublisher(client mqtt.Client, prefix string) *ReportPublisher {
	if prefix == "" {
		prefix = "meshcolor"
	}
	return &ReportPublisher{
		client:  client,
		prefix:  prefix,
		qos:     0,
		retain:  true, // retain so late subscribers see the last report
		reports: make(map[string]ColorInfo),
	}
}

// PublishReport publishes one mesh's ColorInfo to its individual topic
// <prefix>/analysis/<meshID> and refreshes the combined <prefix>/analysis
// topic with all known reports.
func (p *ReportPublisher) PublishReport(meshID string, info ColorInfo) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	p.mu.Lock()
	p.reports[meshID] = info
	p.mu.Unlock()

	if err := p.publishIndividual(meshID, info); err != nil {
		log.Printf("[MQTT] error publishing report for %s: %v", meshID, err)
		return err
	}
	if err := p.publishCombined(); err != nil {
		log.Printf("[MQTT] error publishing combined reports: %v", err)
		return err
	}
	return nil
}

func (p *ReportPublisher) publishIndividual(meshID string, info ColorInfo) error {
	topic := fmt.Sprintf("%s/analysis/%s", p.prefix, meshID)
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}
	log.Printf("[MQTT] published report for %s: %s env, %d categories",
		meshID, info.Environment, info.UniqueCategories)
	return nil
}

func (p *ReportPublisher) publishCombined() error {
	p.mu.RLock()
	combined := make(map[string]ColorInfo, len(p.reports))
	for id, info := range p.reports {
		combined[id] = info
	}
	p.mu.RUnlock()

	topic := fmt.Sprintf("%s/analysis", p.prefix)
	payload, err := json.Marshal(map[string]interface{}{
		"meshes":    combined,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshaling combined reports: %w", err)
	}
	token := p.client.Publish(topic, p.qos, p.retain, payload)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}
	return nil
}

// GetReport returns the last published report for a mesh, if any.
func (p *ReportPublisher) GetReport(meshID string) (ColorInfo, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	info, ok := p.reports[meshID]
	return info, ok
}

// SetQoS sets the publish Quality of Service level (0, 1, or 2).
func (p *ReportPublisher) SetQoS(qos byte) {
	if qos <= 2 {
		p.qos = qos
	}
}

// SetRetain controls whether the broker retains published reports.
func (p *ReportPublisher) SetRetain(retain bool) {
	p.retain = retain
}

// ConnectMQTT dials the broker from config and waits for the connection.
func ConnectMQTT(cfg MQTTConfig) (mqtt.Client, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker not configured")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "meshcolor"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timeout connecting to MQTT broker %s", cfg.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, token.Error())
	}
	return client, nil
}
