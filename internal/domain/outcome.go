package domain

// Result clasifica el cashflow neto de un mercado.
type Result int

const (
	ResultNeutral Result = iota
	ResultWon
	ResultLost
)

// DefaultEpsilon es la zona muerta por defecto alrededor de cero, en USDC.
// Ruido de settlement en punto flotante y redondeo de fees no deben contar
// como win ni como loss.
const DefaultEpsilon = 0.01

// String devuelve el nombre del resultado.
func (r Result) String() string {
	switch r {
	case ResultWon:
		return "WON"
	case ResultLost:
		return "LOST"
	}
	return "NEUTRAL"
}

// Classify convierte un cashflow neto en Won/Lost/Neutral.
// El borde es inclusivo hacia neutral: net == epsilon no es un win.
func Classify(net, epsilon float64) Result {
	switch {
	case net > epsilon:
		return ResultWon
	case net < -epsilon:
		return ResultLost
	}
	return ResultNeutral
}
