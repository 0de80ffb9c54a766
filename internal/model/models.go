package model

// MigrateModels 需要自动迁移的模型
var MigrateModels = []interface{}{
	&CampaignModel{},
	&SaleModel{},
	&RoundModel{},
	&VestingGrantModel{},
	&PurchaseRecordModel{},
	&ClaimRecordModel{},
	&TransferRecordModel{},
}
