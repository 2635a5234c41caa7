package kafka

import (
	"context"
	"encoding/json"
	"time"

	"novelhub/dao/localcache"
	"novelhub/dao/mysql"
	"novelhub/logger"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

/*
	kafka-consumer 的基本操作
*/

// 串行消费模型，一批消息一个事务
func basicSerialConsumerWork(ch chan int, consumer *kafka.Reader) {
	defer wg.Done()
	defer consumer.Close() // 先 close，再 done
	batchSize := 10        // 一批消息的大小，取决于 db 能承受的并发度
	timeout := 5000        // 每 5s 再次尝试 fetch，主要是检测是否应该退出循环使用，时间设置不宜过短

rootloop:
	for {
		// 检查是否应该退出循环
		select {
		case <-ch:
			logger.Infof("kafka:basicSerialConsumerWork: exit")
			break rootloop
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*time.Duration(timeout))
		msgs, err := fetchMessages(ctx, consumer, batchSize)
		cancel()
		if err != nil {
			if !errors.Is(err, context.DeadlineExceeded) { // 其它错误
				logger.Warnf("kafka:basicSerialConsumerWork: fetchMessages: %v", err.Error())
			}
			continue
		}

		success := false
		for i := 0; i < KafkaConsumerRetryTime; i++ {
			var consumeErr error
			successKeys := make([]string, 0, len(msgs))
			failedKeys := make([]string, 0, len(msgs)) // 保存因 convert error 造成失败的消息
			tx := mysql.GetDB().Begin()               // 一批消息一个大的事务，整体成功或失败

			for _, msg := range msgs {
				uniqueKey, errorType, err1 := convertAndConsume(tx, msg)
				if err1 != nil {
					if errorType == ErrTypeTransaction {
						consumeErr = errors.Wrap(err1, "kafka:basicSerialConsumerWork: convertAndConsume")
					} else {
						failedKeys = append(failedKeys, uniqueKey)
					}
				} else {
					successKeys = append(successKeys, uniqueKey)
				}
			}

			if consumeErr != nil { // 事务中出现错误，回滚，「不」向 kafka server 提交 offset
				logger.Warnf("kafka:basicSerialConsumerWork: convertAndConsume error: %v", consumeErr.Error())
				tx.Rollback()

				// 重新消费这一批数据
				time.Sleep(time.Second)
				continue
			}

			tx.Commit()

			// 添加状态信息到 localcache 中
			for _, key := range successKeys {
				localcache.SetStatus(key, localcache.StatusSuccess)
			}
			for _, key := range failedKeys {
				localcache.SetStatus(key, localcache.StatusFailed)
			}

			success = true
			consumer.CommitMessages(context.TODO(), msgs[len(msgs)-1]) // 提交最后一个 offset（需保证该 consumer 对应的 group 的 consumer:partition = 1:1）
			break                                                      // 成功消费，退出 retry 循环
		}

		if !success { // 多次尝试后，仍失败
			logger.Warnf("kafka:basicSerialConsumerWork: Consume failed after %v retries, give up...", KafkaConsumerRetryTime)

			// 这里直接放弃这批消息，后续可以添加「死信队列」等策略
			consumer.CommitMessages(context.TODO(), msgs[len(msgs)-1])
		}
	}
}

// 返回 uniqueKey、error_type、error（可能是 convert，也可能是 consume）
func convertAndConsume(tx *gorm.DB, msg kafka.Message) (string, int, error) {
	var metadata Message
	err := json.Unmarshal(msg.Value, &metadata)
	if err != nil {
		return "", ErrTypeConvert, errors.Wrap(err, "kafka:convertAndConsume: Unmarshal(metadata)")
	}
	data, _ := json.Marshal(metadata.Data)

	switch metadata.Type {
	case TypeLikeIncr:
		return handleLikeIncr(tx, data)

	case TypeLikeMappingCreate:
		return handleLikeMappingCreate(tx, data)

	case TypeLikeMappingRemove:
		return handleLikeMappingRemove(tx, data)
	}

	return "", ErrTypeNoError, nil
}

// sync
func fetchMessages(ctx context.Context, reader *kafka.Reader, n int) ([]kafka.Message, error) {
	list := make([]kafka.Message, 0, n)
	msg, err := reader.FetchMessage(ctx) // 第一次使用 ctx
	if err != nil {
		return nil, errors.Wrap(err, "kafka:fetchMessages: FetchMessage")
	}
	list = append(list, msg)

	ctx1, cancel := context.WithTimeout(context.Background(), 8*time.Millisecond)
	defer cancel()

	// fetch 剩下的 n - 1 条消息
	for i := 0; i < n-1; i++ {
		msg, err = reader.FetchMessage(ctx1) // 后续调用设置独立超时时间
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) { // 如果是超时
				break
			}
			return nil, errors.Wrap(err, "kafka:fetchMessages: FetchMessage") // 其它错误
		}
		list = append(list, msg)
	}
	return list, nil
}

func handleLikeIncr(tx *gorm.DB, data []byte) (string, int, error) {
	var params LikeIncr
	if err := json.Unmarshal(data, &params); err != nil {
		return "", ErrTypeConvert, errors.Wrap(err, "kafka:handleLikeIncr: Unmarshal(params)")
	}

	res := incrCommentLikeCount(tx, params.CommentID, params.Offset)
	if res.Err != nil {
		return "", ErrTypeTransaction, errors.Wrap(res.Err, "kafka:handleLikeIncr: incrCommentLikeCount")
	}

	return res.UniqueKey, ErrTypeNoError, nil
}

func handleLikeMappingCreate(tx *gorm.DB, data []byte) (string, int, error) {
	var params LikeMappingCreate
	if err := json.Unmarshal(data, &params); err != nil {
		return "", ErrTypeConvert, errors.Wrap(err, "kafka:handleLikeMappingCreate: Unmarshal(params)")
	}

	res := createCommentLikeMapping(tx, params.CommentID, params.UserID)
	if res.Err != nil {
		return "", ErrTypeTransaction, errors.Wrap(res.Err, "kafka:handleLikeMappingCreate: createCommentLikeMapping")
	}

	return res.UniqueKey, ErrTypeNoError, nil
}

func handleLikeMappingRemove(tx *gorm.DB, data []byte) (string, int, error) {
	var params LikeMappingRemove
	if err := json.Unmarshal(data, &params); err != nil {
		return "", ErrTypeConvert, errors.Wrap(err, "kafka:handleLikeMappingRemove: Unmarshal(params)")
	}

	res := removeCommentLikeMapping(tx, params.CommentID, params.UserID)
	if res.Err != nil {
		return "", ErrTypeTransaction, errors.Wrap(res.Err, "kafka:handleLikeMappingRemove: removeCommentLikeMapping")
	}

	return res.UniqueKey, ErrTypeNoError, nil
}
