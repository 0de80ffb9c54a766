package logic

import "errors"

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrRoundNotFound      = errors.New("sale round not found")
	ErrGrantNotFound      = errors.New("vesting grant not found")
	ErrUnauthorizedSigner = errors.New("signer is not authorized for this record")
)

// authorize 校验签名者身份
func authorize(expected, signer string) error {
	if expected != signer {
		return ErrUnauthorizedSigner
	}
	return nil
}
