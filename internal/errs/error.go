package errs

import (
	"errors"
)

// 传输层错误，出现之后这个连接就不能再用了
var ErrInvalidConn = errors.New("异常连接")
var ErrPktSync = errors.New("报文乱序")
var ErrPktTooLarge = errors.New("报文过大")
var ErrMalformedPacket = errors.New("报文格式非法")

// 握手阶段错误，直接向调用方返回，不做重试
var ErrCapabilityMismatch = errors.New("服务端缺少必要的能力标记")
var ErrAuthFailure = errors.New("鉴权失败")

// ErrServerError 服务端以 ERR 报文应答，错误码和消息由服务端给出
// 连接本身还能继续用
var ErrServerError = errors.New("服务端返回错误")

// 连接池错误
// ErrPoolTimeout 是调用方唯一能见到的池层错误
// 校验失败在池内部消化，只有超时彻底拿不到连接才会冒出来
var ErrPoolTimeout = errors.New("获取连接超时")
var ErrConnValidation = errors.New("连接校验失败")
var ErrPoolClosed = errors.New("连接池已关闭")

