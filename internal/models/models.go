package models

import (
	"time"
)

type User struct {
	UserID               string     `json:"userId" db:"user_id"`
	Username             string     `json:"username" db:"username"`
	Email                string     `json:"email" db:"email"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	AvatarURL            *string    `json:"avatar" db:"avatar_url"`
	AvatarObject         *string    `json:"-" db:"avatar_object"`
	IsPrivate            bool       `json:"isPrivate" db:"is_private"`
	ResetPasswordToken   *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"-" db:"reset_password_expires"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
}

// UserSummary is the public slice of a user that shows up in lists:
// followers, search results, pending requests, chat partners.
type UserSummary struct {
	UserID    string  `json:"userId" db:"user_id"`
	Username  string  `json:"username" db:"username"`
	AvatarURL *string `json:"avatar" db:"avatar_url"`
	IsPrivate bool    `json:"isPrivate" db:"is_private"`
}

type Post struct {
	PostID        string    `json:"postId" db:"post_id"`
	UserID        string    `json:"userId" db:"user_id"`
	Username      string    `json:"username" db:"username"`
	AvatarURL     *string   `json:"avatar" db:"avatar_url"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	ImageURL      *string   `json:"image" db:"image_url"`
	ImageObject   *string   `json:"-" db:"image_object"`
	LikeCount     int       `json:"likeCount" db:"like_count"`
	LikedByViewer bool      `json:"likedByViewer" db:"liked_by_viewer"`
	CreatedAt     time.Time `json:"timestamp" db:"created_at"`
}

type Message struct {
	MessageID      string    `json:"messageId" db:"message_id"`
	SenderID       string    `json:"senderId" db:"sender_id"`
	ReceiverID     string    `json:"receiverId" db:"receiver_id"`
	Message        string    `json:"message" db:"message"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"timestamp" db:"created_at"`
	SenderName     string    `json:"senderName" db:"sender_name"`
	SenderAvatar   *string   `json:"senderAvatar" db:"sender_avatar"`
	ReceiverName   string    `json:"receiverName" db:"receiver_name"`
	ReceiverAvatar *string   `json:"receiverAvatar" db:"receiver_avatar"`
}

// LastMessage annotates a chat partner with the newest message between
// the partner and the viewer, regardless of direction.
type LastMessage struct {
	Message    string    `json:"message" db:"message"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	SenderName string    `json:"senderName" db:"sender_name"`
}

type ChatPartner struct {
	UserID      string       `json:"userId"`
	Username    string       `json:"username"`
	AvatarURL   *string      `json:"avatar"`
	UnreadCount int          `json:"unreadCount"`
	LastMessage *LastMessage `json:"lastMessage"`
}

// Profile is what GET /profile/:userId returns. For a private account that
// the viewer does not follow, Posts stays empty and CanViewPosts is false.
type Profile struct {
	User              UserSummary   `json:"user"`
	Email             string        `json:"email,omitempty"`
	FollowersCount    int           `json:"followersCount"`
	FollowingCount    int           `json:"followingCount"`
	Posts             []Post        `json:"posts"`
	IsFollowing       bool          `json:"isFollowing"`
	FollowRequestSent bool          `json:"followRequestSent"`
	CanViewPosts      bool          `json:"canViewPosts"`
	Followers         []UserSummary `json:"followers,omitempty"`
	Following         []UserSummary `json:"following,omitempty"`
}
