package xtream

import (
	"encoding/json"
	"strconv"
	"time"
)

// AuthInfo contains the combined server and user information returned by
// the bare player_api.php endpoint.
type AuthInfo struct {
	UserInfo   *UserInfo  `json:"user_info"`
	ServerInfo ServerInfo `json:"server_info"`
}

// Authenticated reports whether the panel accepted the credentials.
// A response without a user_info object means the account was rejected.
func (a *AuthInfo) Authenticated() bool {
	return a != nil && a.UserInfo != nil && a.UserInfo.Auth.Int() == 1
}

// UserInfo contains user account information.
type UserInfo struct {
	Username          string  `json:"username"`
	Message           string  `json:"message"`
	Auth              FlexInt `json:"auth"`
	Status            string  `json:"status"`
	ExpDate           FlexInt `json:"exp_date"`
	IsTrial           FlexInt `json:"is_trial"`
	ActiveConnections FlexInt `json:"active_cons"`
	MaxConnections    FlexInt `json:"max_connections"`
}

// ExpirationTime returns the account expiration time, zero when the panel
// reports none.
func (u *UserInfo) ExpirationTime() time.Time {
	if u.ExpDate.Int() == 0 {
		return time.Time{}
	}
	return time.Unix(u.ExpDate.Int(), 0)
}

// ServerInfo contains panel server information.
type ServerInfo struct {
	URL            string  `json:"url"`
	Port           FlexInt `json:"port"`
	HTTPSPort      FlexInt `json:"https_port"`
	ServerProtocol string  `json:"server_protocol"`
	Timezone       string  `json:"timezone"`
	TimeNow        string  `json:"time_now"`
}

// Category represents a live stream category.
type Category struct {
	CategoryID   FlexString `json:"category_id"`
	CategoryName string     `json:"category_name"`
	ParentID     FlexInt    `json:"parent_id"`
}

// Stream represents a live stream.
type Stream struct {
	Num          FlexInt    `json:"num"`
	Name         string     `json:"name"`
	StreamType   string     `json:"stream_type"`
	StreamID     FlexInt    `json:"stream_id"`
	StreamIcon   string     `json:"stream_icon"`
	EPGChannelID string     `json:"epg_channel_id"`
	Added        FlexInt    `json:"added"`
	IsAdult      FlexInt    `json:"is_adult"`
	CategoryID   FlexString `json:"category_id"`
	CustomSID    string     `json:"custom_sid"`
	DirectSource string     `json:"direct_source"`
	TVArchive    FlexInt    `json:"tv_archive"`
}

// FlexInt handles JSON numbers that may arrive as strings or integers.
// Unparseable values decode as zero rather than failing the whole listing.
type FlexInt int64

// Int returns the integer value.
func (f FlexInt) Int() int64 {
	return int64(f)
}

// UnmarshalJSON handles both string and number JSON values.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(parsed)
		return nil
	}

	// Booleans and other odd encodings show up in the wild; treat them as zero.
	*f = 0
	return nil
}

// MarshalJSON encodes the value as a plain number.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// FlexString handles JSON values that may arrive as strings or numbers.
type FlexString string

// String returns the string value.
func (f FlexString) String() string {
	return string(f)
}

// UnmarshalJSON handles both string and number JSON values.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	// null and other encodings decode as empty.
	*f = ""
	return nil
}

// MarshalJSON encodes the value as a string.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}
