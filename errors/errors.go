package novelhub

import "github.com/pkg/errors"

var (
	// common
	ErrInvalidParam = errors.New("无效参数")
	ErrInternal     = errors.New("服务器繁忙")
	ErrTimeout      = errors.New("操作超时")
	ErrForbidden    = errors.New("非法操作")
	ErrNotFound     = errors.New("资源不存在")

	// token
	ErrInvalidToken = errors.New("无效的 Token")
	ErrExpiredToken = errors.New("过期的 Token")

	// comment
	ErrCommentNotFound = errors.New("评论不存在")
	ErrInvalidParent   = errors.New("回复的对象不是根评论")
	ErrBlankContent    = errors.New("评论内容不能为空")
	ErrInvalidReplyTo  = errors.New("@ 的回复不在当前评论下")
)
