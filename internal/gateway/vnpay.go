package gateway

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Формат времени шлюза: yyyyMMddHHmmss.
const TimeLayout = "20060102150405"

// Код ответа шлюза при успешной оплате.
const ResponseCodeSuccess = "00"

const (
	ParamVersion       = "vnp_Version"
	ParamCommand       = "vnp_Command"
	ParamTmnCode       = "vnp_TmnCode"
	ParamAmount        = "vnp_Amount"
	ParamCurrCode      = "vnp_CurrCode"
	ParamTxnRef        = "vnp_TxnRef"
	ParamOrderInfo     = "vnp_OrderInfo"
	ParamOrderType     = "vnp_OrderType"
	ParamLocale        = "vnp_Locale"
	ParamReturnURL     = "vnp_ReturnUrl"
	ParamIPAddr        = "vnp_IpAddr"
	ParamCreateDate    = "vnp_CreateDate"
	ParamExpireDate    = "vnp_ExpireDate"
	ParamResponseCode  = "vnp_ResponseCode"
	ParamTransactionNo = "vnp_TransactionNo"
)

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	Version    string
	Command    string
	Locale     string
	OrderType  string
	Location   *time.Location
}

type VNPay struct {
	cfg Config
}

func NewVNPay(cfg Config) *VNPay {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &VNPay{cfg: cfg}
}

type PaymentRequest struct {
	TxnRef    string
	Amount    decimal.Decimal
	Currency  string
	OrderInfo string
	ReturnURL string
	ClientIP  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MinorUnits переводит сумму в минимальные единицы: value * 100 с отбрасыванием дробной части.
func MinorUnits(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}

// Params собирает параметры запроса без подписи.
func (v *VNPay) Params(req PaymentRequest) map[string]string {
	return map[string]string{
		ParamVersion:    v.cfg.Version,
		ParamCommand:    v.cfg.Command,
		ParamTmnCode:    v.cfg.TmnCode,
		ParamAmount:     MinorUnits(req.Amount),
		ParamCurrCode:   req.Currency,
		ParamTxnRef:     req.TxnRef,
		ParamOrderInfo:  req.OrderInfo,
		ParamOrderType:  v.cfg.OrderType,
		ParamLocale:     v.cfg.Locale,
		ParamReturnURL:  req.ReturnURL,
		ParamIPAddr:     req.ClientIP,
		ParamCreateDate: req.CreatedAt.In(v.cfg.Location).Format(TimeLayout),
		ParamExpireDate: req.ExpiresAt.In(v.cfg.Location).Format(TimeLayout),
	}
}

// PaymentURL возвращает подписанный URL для редиректа покупателя.
func (v *VNPay) PaymentURL(req PaymentRequest) string {
	_, query := BuildSignedQuery(v.Params(req), v.cfg.HashSecret)
	return v.cfg.PayURL + "?" + query
}

func (v *VNPay) Verify(params map[string]string) bool {
	return Verify(params, v.cfg.HashSecret)
}

// Callback - разобранные поля ответа шлюза.
type Callback struct {
	Params        map[string]string
	TxnRef        string
	ResponseCode  string
	TransactionNo string
	Amount        string
}

func (c Callback) Success() bool {
	return c.ResponseCode == ResponseCodeSuccess
}

// ParseCallback берет первое значение каждого параметра.
func ParseCallback(values url.Values) Callback {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return CallbackFromParams(params)
}

func CallbackFromParams(params map[string]string) Callback {
	return Callback{
		Params:        params,
		TxnRef:        params[ParamTxnRef],
		ResponseCode:  params[ParamResponseCode],
		TransactionNo: params[ParamTransactionNo],
		Amount:        params[ParamAmount],
	}
}
