package gatewayevent

// Intent is a single bit in the intents bitset sent on identify, declaring
// which categories of events a connection wishes to receive.
type Intent int64

const (
	IntentGuilds                 Intent = 1 << 0
	IntentGuildMembers            Intent = 1 << 1
	IntentGuildBans                Intent = 1 << 2
	IntentGuildEmojis               Intent = 1 << 3
	IntentGuildIntegrations           Intent = 1 << 4
	IntentGuildWebhooks                 Intent = 1 << 5
	IntentGuildInvites                    Intent = 1 << 6
	IntentGuildVoiceStates                  Intent = 1 << 7
	IntentGuildPresences                       Intent = 1 << 8
	IntentGuildMessages                           Intent = 1 << 9
	IntentGuildMessageReactions                     Intent = 1 << 10
	IntentGuildMessageTyping                          Intent = 1 << 11
	IntentDirectMessages                                 Intent = 1 << 12
	IntentDirectMessageReactions                           Intent = 1 << 13
	IntentDirectMessageTyping                                Intent = 1 << 14
)

// IdentifyProperties is the `properties` sub-object of an identify packet.
type IdentifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

// Identify is the op-2 packet a shard sends to start a new session. Bot
// tokens are always transmitted prefixed with "Bot ", applied by the
// caller before this struct is built.
type Identify struct {
	Op   Op             `json:"op"`
	Data IdentifyData   `json:"d"`
}

type IdentifyData struct {
	Token          string             `json:"token"`
	Properties     IdentifyProperties `json:"properties"`
	LargeThreshold int                `json:"large_threshold,omitempty"`
	Compress       bool               `json:"compress,omitempty"`
	Shard          *[2]int            `json:"shard,omitempty"`
	Presence       interface{}        `json:"presence,omitempty"`
	Intents        Intent             `json:"intents"`
}

// Resume is the op-6 packet a shard sends to resume a previous session
// instead of re-identifying.
type Resume struct {
	Op   Op         `json:"op"`
	Data ResumeData `json:"d"`
}

type ResumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  int64  `json:"seq"`
}

// Hello is the op-10 packet a shard receives immediately after connecting.
type Hello struct {
	Op   Op        `json:"op"`
	Data HelloData `json:"d"`
}

type HelloData struct {
	HeartbeatIntervalMS int64 `json:"heartbeat_interval"`
}

// Heartbeat is the op-1 packet sent on the heartbeat ticker, and the op-11
// heartbeat ack received in response.
type Heartbeat struct {
	Op   Op    `json:"op"`
	Data int64 `json:"d"`
}
