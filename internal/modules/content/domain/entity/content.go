package entity

// ContentRecord 渲染到首页的内容
type ContentRecord struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SessionInfo 当前会话数据，原样作为请求体转发给上游
type SessionInfo map[string]any

// Get 读取会话中的值
func (s SessionInfo) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}
