package connection

import "crypto/sha1"

// scramblePassword mysql_native_password 的挑战应答
// token = SHA1(password) XOR SHA1(scramble + SHA1(SHA1(password)))
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_authentication_methods_native_password_authentication.html
func scramblePassword(scramble, password []byte) []byte {
	if len(password) == 0 {
		return nil
	}

	// stage1 = SHA1(password)
	crypt := sha1.New()
	crypt.Write(password)
	stage1 := crypt.Sum(nil)

	// stage2 = SHA1(stage1)
	crypt.Reset()
	crypt.Write(stage1)
	stage2 := crypt.Sum(nil)

	// token = SHA1(scramble + stage2) XOR stage1
	crypt.Reset()
	crypt.Write(scramble)
	crypt.Write(stage2)
	token := crypt.Sum(nil)

	for i := range token {
		token[i] ^= stage1[i]
	}
	return token
}
