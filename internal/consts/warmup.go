package consts

// Прогрев кэшей по умолчанию, если в конфиге списки пустые
var (
	DefaultWarmUpAssets = []string{"bitcoin", "ethereum", "thorchainrune"}
	DefaultWarmUpFiat   = []string{"EUR", "GBP", "JPY"}
)

// WarmUpAssets — заданный список или список по умолчанию
func WarmUpAssets(configured []string) []string {
	if len(configured) == 0 {
		return DefaultWarmUpAssets
	}
	return configured
}

func WarmUpFiat(configured []string) []string {
	if len(configured) == 0 {
		return DefaultWarmUpFiat
	}
	return configured
}
