package eventbus

type SessionEventType string

const (
	SessionEventTemplateLoaded    SessionEventType = "TemplateLoaded"
	SessionEventGenerateRequested SessionEventType = "GenerateRequested"
	SessionEventTornDown          SessionEventType = "TornDown"
)

type SessionEvent struct {
	Type       SessionEventType
	SessionID  string
	UserID     uint
	TemplateID uint
	RequestID  uint // 生成请求ID，仅 GenerateRequested 事件携带
}

type SessionEventHandler = Handler[SessionEvent]
type SessionEventBus = Bus[SessionEventType, SessionEvent]

func NewSessionEventBus() *SessionEventBus {
	return NewBus[SessionEventType, SessionEvent]()
}
