package algorithm

// Modulus 是所有累加值使用的素数模。
const Modulus int64 = 1_000_000_007

// Inv2 是 2 在模 Modulus 下的乘法逆元。
const Inv2 int64 = (Modulus + 1) / 2

// NormMod 将任意 int64（包括负数）归一化到 [0, Modulus)。
func NormMod(x int64) int64 {
	x %= Modulus
	if x < 0 {
		x += Modulus
	}
	return x
}

// AddMod 要求 a, b 已在 [0, Modulus) 内。
func AddMod(a, b int64) int64 {
	s := a + b
	if s >= Modulus {
		s -= Modulus
	}
	return s
}

// SubMod 要求 a, b 已在 [0, Modulus) 内。
func SubMod(a, b int64) int64 {
	s := a - b
	if s < 0 {
		s += Modulus
	}
	return s
}

// MulMod 要求 a, b 已在 [0, Modulus) 内，乘积不超过 2^60，int64 可容纳。
func MulMod(a, b int64) int64 {
	return a * b % Modulus
}
