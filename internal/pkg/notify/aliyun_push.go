package notify

import (
	"fmt"

	"redemption_report/internal/pkg/config"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/push"
)

// AliyunPushNotifier 通过阿里云推送把导出结果通知到管理员账号
type AliyunPushNotifier struct {
	client  *push.Client
	appKey  int64
	account string
}

func NewAliyunPushNotifier() (*AliyunPushNotifier, error) {
	cfg := config.GlobalConfig.Push

	if cfg.AccessKeyID == "" || cfg.AppKey == 0 {
		return nil, fmt.Errorf("push config is missing")
	}

	client, err := push.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunPushNotifier{
		client:  client,
		appKey:  cfg.AppKey,
		account: cfg.AdminAccount,
	}, nil
}

// Success 推送成功通知
func (n *AliyunPushNotifier) Success(title, message string) error {
	request := push.CreatePushRequest()
	request.AppKey = requests.NewInteger(int(n.appKey))
	request.Target = "ACCOUNT"
	request.TargetValue = n.account
	request.Title = title
	request.Body = message
	request.DeviceType = "ALL"
	request.PushType = "NOTICE"

	_, err := n.client.Push(request)
	return err
}
