package domain

// Mensagens exibíveis ao usuário, no idioma da vitrine (coreano).
// São parte do contrato das operações: os consumidores repassam o texto
// sem reformular, então qualquer mudança aqui é visível na interface.
const (
	// Sessão
	MsgInvalidCredentials = "이메일 또는 비밀번호가 올바르지 않습니다."
	MsgLoginError         = "로그인 중 오류가 발생했습니다."
	MsgEmailExists        = "이미 존재하는 이메일입니다."
	MsgRegisterSuccess    = "회원가입 성공! 로그인해주세요."
	MsgRegisterError      = "회원가입 중 오류가 발생했습니다."
	MsgProfileUpdateError = "프로필 수정 중 오류가 발생했습니다."

	// Nome padrão atribuído no registro quando o usuário não informa um.
	DefaultUserName = "새 사용자"

	// Lista de desejos
	MsgWishlistLoginFirst = "로그인 후 관심 상품을 이용해주세요."
	MsgWishlistAdded      = "관심 상품에 추가되었습니다."
	MsgWishlistRemoved    = "관심 상품에서 제거되었습니다."
	MsgWishlistFailed     = "관심 상품 업데이트에 실패했습니다."

	// Checkout
	MsgCheckoutEmpty         = "결제할 상품이 없습니다. 상품을 담아주세요."
	MsgCheckoutNeedShipping  = "배송 정보를 모두 입력해주세요."
	MsgCheckoutNeedMethod    = "결제 수단을 선택해주세요."
	MsgCheckoutNeedAgreement = "주문 내용을 확인하고 약관에 동의해주세요."
	MsgCheckoutDone          = "결제가 완료되었습니다!"
)
