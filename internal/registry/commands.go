// ABOUTME: Built-in command definitions with per-language canonical phrases and synonyms
// ABOUTME: Phrase lists are written in natural orthography; the dictionary normalizes them at build time

package registry

import "github.com/mauromedda/intent-router-go/internal/lang"

// Command categories.
const (
	CategoryDebug    = "debug"
	CategoryBuild    = "build"
	CategoryMaintain = "maintain"
	CategoryReview   = "review"
	CategoryExplain  = "explain"
	CategoryVerify   = "verify"
	CategoryVCS      = "vcs"
	CategoryExplore  = "explore"
	CategoryFlow     = "flow"
	CategoryMeta     = "meta"
)

func builtinCommands() []IntentDefinition {
	return []IntentDefinition{
		{
			ID:       "bug.fix",
			Category: CategoryDebug,
			Label:    "Fix a bug",
			Params: []ParamSpec{
				{Name: "description", Kind: ParamText},
			},
			Slash: []string{"fix"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"fix the bug", "fix this bug", "fix bug", "fix", "resolve the error", "squash the bug", "fix the error", "repair"},
				lang.Spanish:  {"arregla el error", "corrige el error", "arregla este bug", "soluciona el error", "arreglar", "arréglalo"},
				lang.French:   {"corrige le bogue", "répare le bug", "corrige cette erreur", "réparer", "corrige"},
				lang.Japanese: {"バグを直して", "バグを修正して", "修正して", "直して", "バグ修正"},
				lang.Korean:   {"버그 수정", "버그 수정해줘", "버그를 고쳐줘", "고쳐줘", "수정해줘"},
			},
		},
		{
			ID:       "code.generate",
			Category: CategoryBuild,
			Label:    "Generate code",
			Params: []ParamSpec{
				{Name: "description", Kind: ParamText, Required: true},
			},
			Slash: []string{"generate", "gen"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"write a function", "generate code", "create a function", "implement", "write code", "scaffold"},
				lang.Spanish:  {"genera código", "escribe una función", "crea una función", "implementa"},
				lang.French:   {"génère du code", "écris une fonction", "crée une fonction", "implémente"},
				lang.Japanese: {"コードを書いて", "関数を作って", "実装して", "コード生成"},
				lang.Korean:   {"코드 작성", "코드를 작성해줘", "함수를 만들어줘", "구현해줘"},
			},
		},
		{
			ID:       "code.refactor",
			Category: CategoryMaintain,
			Label:    "Refactor code",
			Params: []ParamSpec{
				{Name: "target", Kind: ParamText},
			},
			Slash: []string{"refactor"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"refactor", "clean up the code", "restructure", "simplify this code"},
				lang.Spanish:  {"refactoriza", "limpia el código", "reestructura"},
				lang.French:   {"refactorise", "nettoie le code", "restructure ça"},
				lang.Japanese: {"リファクタリングして", "リファクタ", "整理して"},
				lang.Korean:   {"리팩토링", "리팩토링해줘", "코드 정리"},
			},
		},
		{
			ID:       "code.review",
			Category: CategoryReview,
			Label:    "Review code",
			Params: []ParamSpec{
				{Name: "target", Kind: ParamPath},
			},
			Slash: []string{"review"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"review the code", "review this", "code review", "fix"},
				lang.Spanish:  {"revisa el código", "revisión de código"},
				lang.French:   {"relis le code", "revue de code", "révise le code"},
				lang.Japanese: {"コードレビュー", "レビューして"},
				lang.Korean:   {"코드 리뷰", "리뷰해줘"},
			},
		},
		{
			ID:       "code.explain",
			Category: CategoryExplain,
			Label:    "Explain code",
			Params: []ParamSpec{
				{Name: "topic", Kind: ParamText},
			},
			Slash: []string{"explain"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"explain this code", "explain", "what does this do", "how does this work"},
				lang.Spanish:  {"explica este código", "explícame", "qué hace esto"},
				lang.French:   {"explique ce code", "explique", "que fait ce code"},
				lang.Japanese: {"説明して", "このコードを説明して", "解説して"},
				lang.Korean:   {"설명해줘", "코드 설명"},
			},
		},
		{
			ID:       "lint.run",
			Category: CategoryMaintain,
			Label:    "Run the linter",
			Params: []ParamSpec{
				{Name: "path", Kind: ParamPath},
			},
			Slash: []string{"lint"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"run the linter", "lint the code", "lint", "check style", "fix"},
				lang.Spanish:  {"ejecuta el linter", "revisa el estilo", "lint"},
				lang.French:   {"lance le linter", "vérifie le style", "lint"},
				lang.Japanese: {"リントして", "リント実行", "静的解析して"},
				lang.Korean:   {"린트 실행", "린트 돌려줘"},
			},
		},
		{
			ID:       "test.run",
			Category: CategoryVerify,
			Label:    "Run the tests",
			Params: []ParamSpec{
				{Name: "path", Kind: ParamPath},
			},
			Slash: []string{"test", "tests"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"run the tests", "run tests", "execute the test suite", "test"},
				lang.Spanish:  {"ejecuta las pruebas", "corre los tests", "prueba"},
				lang.French:   {"lance les tests", "exécute les tests", "teste"},
				lang.Japanese: {"テストを実行して", "テストして", "テスト実行"},
				lang.Korean:   {"테스트 실행", "테스트 돌려줘"},
			},
		},
		{
			ID:       "git.commit",
			Category: CategoryVCS,
			Label:    "Commit changes",
			Params: []ParamSpec{
				{Name: "message", Kind: ParamText},
			},
			Slash: []string{"commit"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"commit the changes", "commit", "make a commit", "save my changes"},
				lang.Spanish:  {"haz un commit", "confirma los cambios", "commit"},
				lang.French:   {"fais un commit", "valide les changements", "commit"},
				lang.Japanese: {"コミットして", "コミット"},
				lang.Korean:   {"커밋해줘", "커밋"},
			},
		},
		{
			ID:       "git.status",
			Category: CategoryVCS,
			Label:    "Show repository status",
			Slash:    []string{"status"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"git status", "show the status", "what changed", "status"},
				lang.Spanish:  {"estado del repositorio", "qué cambió", "status"},
				lang.French:   {"état du dépôt", "qu'est-ce qui a changé", "status"},
				lang.Japanese: {"ステータス", "状態を見せて"},
				lang.Korean:   {"상태 보여줘", "스테이터스"},
			},
		},
		{
			ID:       "search.code",
			Category: CategoryExplore,
			Label:    "Search the codebase",
			Params: []ParamSpec{
				{Name: "query", Kind: ParamText, Required: true},
			},
			Slash: []string{"search", "find"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"search for", "search the code", "look for", "find", "grep"},
				lang.Spanish:  {"busca", "encuentra", "buscar"},
				lang.French:   {"cherche", "trouve", "recherche"},
				lang.Japanese: {"検索して", "探して"},
				lang.Korean:   {"검색해줘", "찾아줘"},
			},
		},
		{
			ID:       "doc.generate",
			Category: CategoryExplain,
			Label:    "Generate documentation",
			Params: []ParamSpec{
				{Name: "target", Kind: ParamPath},
			},
			Slash: []string{"docs", "doc"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"generate docs", "write documentation", "document this"},
				lang.Spanish:  {"genera documentación", "documenta esto"},
				lang.French:   {"génère la documentation", "documente ça"},
				lang.Japanese: {"ドキュメントを書いて", "ドキュメント生成"},
				lang.Korean:   {"문서 작성", "문서화해줘"},
			},
		},
		{
			ID:       "focus.start",
			Category: CategoryFlow,
			Label:    "Start a focus session",
			Params: []ParamSpec{
				{Name: "duration", Kind: ParamDuration, Required: true},
			},
			Slash: []string{"focus"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"start a focus session", "focus for", "focus", "deep work"},
				lang.Spanish:  {"sesión de concentración", "concéntrate", "enfoque"},
				lang.French:   {"session de concentration", "concentre-toi"},
				lang.Japanese: {"集中モード", "集中して"},
				lang.Korean:   {"집중 모드", "집중해줘"},
			},
		},
		{
			ID:       "mode.set",
			Category: CategoryFlow,
			Label:    "Switch cognitive mode",
			Params: []ParamSpec{
				{Name: "mode", Kind: ParamEnum, Required: true, Values: builtinModeIDs()},
			},
			Slash: []string{"mode"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"switch mode", "change mode", "set mode", "switch to"},
				lang.Spanish:  {"cambia el modo", "cambiar modo"},
				lang.French:   {"change de mode", "changer de mode"},
				lang.Japanese: {"モード変更", "モードを変えて"},
				lang.Korean:   {"모드 변경", "모드 바꿔줘"},
			},
		},
		{
			ID:       "help.show",
			Category: CategoryMeta,
			Label:    "Show help",
			Slash:    []string{"help"},
			Phrases: map[lang.Tag][]string{
				lang.English:  {"show help", "what can you do", "help"},
				lang.Spanish:  {"ayuda", "qué puedes hacer"},
				lang.French:   {"aide", "que peux-tu faire"},
				lang.Japanese: {"ヘルプ", "使い方", "助けて"},
				lang.Korean:   {"도움말", "도와줘"},
			},
		},
	}
}
