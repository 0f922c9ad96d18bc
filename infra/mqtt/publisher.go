package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/heatplan/core/plan"
	"github.com/kilianp07/heatplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// TopicPrefix is the base topic; the first offset goes to
	// <prefix>/offset and the full plan to <prefix>/plan.
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	Retain      bool   `json:"retain"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "heatplan"
	}
	if c.ClientID == "" {
		c.ClientID = "heatplan-" + uuid.NewString()[:8]
	}
}

// LoadTLSConfig loads the TLS configuration from the file paths in the
// config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// pahoClient is the subset of the Paho client the publisher uses. It exists
// so tests can substitute a fake.
type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher pushes plan results to an MQTT broker: the actionable first
// offset on its own topic for the heat pump integration, the full plan as
// diagnostics.
type Publisher struct {
	cli    pahoClient
	cfg    Config
	logger logger.Logger
}

// NewPublisher connects to the broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	log := logger.New("mqtt-publisher")
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Publisher{cli: cli, cfg: cfg, logger: log}, nil
}

// PublishPlan publishes the plan result. The offset topic carries the bare
// integer so dumb integrations can consume it without JSON parsing.
func (p *Publisher) PublishPlan(res plan.Result) error {
	offsetTopic := p.cfg.TopicPrefix + "/offset"
	if token := p.cli.Publish(offsetTopic, p.cfg.QoS, p.cfg.Retain, fmt.Sprintf("%d", res.FirstOffset())); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish offset: %w", token.Error())
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	planTopic := p.cfg.TopicPrefix + "/plan"
	if token := p.cli.Publish(planTopic, p.cfg.QoS, p.cfg.Retain, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish plan: %w", token.Error())
	}
	p.logger.Debugw("plan published", map[string]any{
		"plan_id":      res.PlanID,
		"first_offset": res.FirstOffset(),
		"horizon":      res.Horizon(),
	})
	return nil
}

// Close disconnects from the broker, allowing in-flight publishes 250ms to
// finish.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
