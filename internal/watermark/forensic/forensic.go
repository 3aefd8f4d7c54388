// Package forensic fuses the two watermark channels into the final verdict.
// It is pure policy: no modality knowledge beyond a score and its threshold.
package forensic

import "math"

// Assessment is the fused classification of one (key, content) pair.
type Assessment struct {
	StatDetected   bool
	Detected       bool
	TamperDetected bool
	Confidence     float64
}

// Assess combines the statistical score and the cryptographic signature
// outcome.
//
//	detected = score over threshold OR signature valid (either proof suffices)
//	tamper   = bias signal present AND signature broken
//
// Confidence is a logistic ramp on the score excess; a valid signature
// floors it at 0.9. The combination is monotone in both channels and reaches
// 1.0 only when both are maximally confirmatory.
func Assess(score, threshold float64, signatureValid bool) Assessment {
	statDetected := score > threshold
	statConf := logistic(score - threshold)

	confidence := statConf
	if signatureValid {
		confidence = 0.9 + 0.1*statConf
	}

	return Assessment{
		StatDetected:   statDetected,
		Detected:       statDetected || signatureValid,
		TamperDetected: statDetected && !signatureValid,
		Confidence:     clamp01(confidence),
	}
}

func logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
