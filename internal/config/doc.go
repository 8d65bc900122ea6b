// Package config загружает, нормализует и проверяет конфигурацию fieldsync.
//
// Один TOML-файл описывает и клиента (очередь, сеть, синхронизация,
// конфликты, observer API), и reference backend (секция [backend]).
// Пути с тильдой раскрываются, переменные окружения FIELDSYNC_SERVER_URL и
// FIELDSYNC_OPERATOR перекрывают значения из файла.
package config
