package controller

type Code uint

const (
	CodeSuccess Code = iota + 1000
	CodeInternalErr
	CodeServerBusy
	CodeInvalidParam
	CodeInvalidToken
	CodeExpiredToken
	CodeNeedLogin
	CodeForbidden
	CodeTimeout

	CodeNoSuchComment
	CodeInvalidParent
	CodeInvalidReplyTo
	CodeBlankContent
)

var codeMsgMap = map[Code]string{
	CodeSuccess:      "成功",
	CodeInternalErr:  "服务繁忙",
	CodeServerBusy:   "触发限流",
	CodeInvalidParam: "无效参数",
	CodeInvalidToken: "无效 Token",
	CodeExpiredToken: "过期 Token",
	CodeNeedLogin:    "需要登录",
	CodeForbidden:    "没有操作权限",
	CodeTimeout:      "请求超时",

	CodeNoSuchComment:  "没有该评论",
	CodeInvalidParent:  "只能回复根评论",
	CodeInvalidReplyTo: "回复对象不在该评论下",
	CodeBlankContent:   "内容不能为空",
}

func (c Code) getMsg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		return "无效错误码"
	}
	return msg
}
